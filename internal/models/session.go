package models

import "github.com/golang-jwt/jwt/v4"

// Session is the externally authenticated identity of the caller. A nil *Session means
// the request is anonymous. It is passed explicitly into every service call.
type Session struct {
	ExternalID string `json:"uid"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	Username   string `json:"username,omitempty"`
	Picture    string `json:"picture,omitempty"`
}

// JwtCustomClaims are the claims of the locally issued session token.
type JwtCustomClaims struct {
	Session
	jwt.RegisteredClaims
}
