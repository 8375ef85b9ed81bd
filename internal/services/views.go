package services

import (
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/samber/lo"
)

// CommentView is a comment with its author projection.
type CommentView struct {
	ID        string             `json:"id"`
	PostID    string             `json:"post_id"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"created_at"`
	Author    models.UserCompact `json:"author"`
}

type LikeView struct {
	UserID string `json:"user_id"`
}

type PostCount struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}

// PostView is the denormalized feed entry.
type PostView struct {
	ID        string             `json:"id"`
	Content   string             `json:"content"`
	Image     string             `json:"image"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Author    models.UserCompact `json:"author"`
	Comments  []CommentView      `json:"comments"`
	Likes     []LikeView         `json:"likes"`
	Count     PostCount          `json:"_count"`
}

type NotificationPost struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

type NotificationComment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationView is a notification joined with its creator and, when set, its post and comment.
type NotificationView struct {
	ID        string                  `json:"id"`
	Type      models.NotificationType `json:"type"`
	Read      bool                    `json:"read"`
	CreatedAt time.Time               `json:"created_at"`
	Creator   models.UserCompact      `json:"creator"`
	Post      *NotificationPost       `json:"post,omitempty"`
	Comment   *NotificationComment    `json:"comment,omitempty"`
}

// ProfileView is a user's public profile with graph and post counts.
// Private account fields such as email are left out.
type ProfileView struct {
	ID          string    `json:"id"`
	Handle      string    `json:"handle"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio,omitempty"`
	Image       string    `json:"image,omitempty"`
	Website     string    `json:"website,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Followers   int64     `json:"followers"`
	Following   int64     `json:"following"`
	Posts       int64     `json:"posts"`
	IsFollowing bool      `json:"is_following"`
}

func toProfileView(u models.User) *ProfileView {
	return &ProfileView{
		ID:        u.ID,
		Handle:    u.Handle,
		Name:      u.Name,
		Bio:       u.Bio,
		Image:     u.Image,
		Website:   u.Website,
		Location:  u.Location,
		CreatedAt: u.CreatedAt,
	}
}

func toCommentView(c models.Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Author:    c.Author.ToCompact(),
	}
}

func toPostView(p models.Post) PostView {
	return PostView{
		ID:        p.ID,
		Content:   p.Content,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Author:    p.Author.ToCompact(),
		Comments:  lo.Map(p.Comments, func(c models.Comment, _ int) CommentView { return toCommentView(c) }),
		Likes: lo.Map(p.Likes, func(l models.Like, _ int) LikeView {
			return LikeView{UserID: l.UserID}
		}),
		Count: PostCount{Likes: len(p.Likes), Comments: len(p.Comments)},
	}
}

func toPostViews(posts []models.Post) []PostView {
	return lo.Map(posts, func(p models.Post, _ int) PostView { return toPostView(p) })
}

func toNotificationView(n models.Notification) NotificationView {
	v := NotificationView{
		ID:        n.ID,
		Type:      n.Type,
		Read:      n.IsRead,
		CreatedAt: n.CreatedAt,
		Creator:   n.Actor.ToCompact(),
	}
	if n.Post != nil {
		v.Post = &NotificationPost{ID: n.Post.ID, Content: n.Post.Content, Image: n.Post.Image}
	}
	if n.Comment != nil {
		v.Comment = &NotificationComment{ID: n.Comment.ID, Content: n.Comment.Content, CreatedAt: n.Comment.CreatedAt}
	}
	return v
}

func toCompacts(users []models.User) []models.UserCompact {
	return lo.Map(users, func(u models.User, _ int) models.UserCompact { return u.ToCompact() })
}
