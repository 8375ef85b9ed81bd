package router

import (
	"github.com/anonto42/nano-social/backend/internal/handlers"
	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/notifications"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/revalidate"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/anonto42/nano-social/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Dependencies are the external resources the routes are built on.
type Dependencies struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client // optional
	Verifier middleware.TokenVerifier
	Log      zerolog.Logger
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	log := deps.Log

	// Health check - always accessible
	e.GET("/health", handlers.NewHealthHandler(deps.DB).HealthCheck)

	// --- Services ---
	var rv revalidate.Revalidator = revalidate.NewLogRevalidator(log)
	if deps.Redis != nil {
		rv = revalidate.NewRedisRevalidator(deps.Redis, deps.Config.RevalidateChannel)
	}
	store := repositories.NewStore(deps.DB)
	svcDeps := services.Deps{
		Store:       store,
		Revalidator: rv,
		Notifier:    notifications.NewNotifier(deps.Redis),
		Log:         log,
	}
	identity := services.NewIdentityResolver(store, log)
	graph := services.NewSocialGraphService(svcDeps, identity)
	content := services.NewContentService(svcDeps, identity)
	interaction := services.NewInteractionService(svcDeps, identity)
	notificationSvc := services.NewNotificationService(svcDeps, identity)
	profile := services.NewProfileService(svcDeps, identity)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	handlers.NewAuthHandler(identity, deps.Verifier, deps.Config.JWTSecret, deps.Config.JWTTTL).RegisterAuthRoutes(authGroup)
	log.Debug().Msg("Auth routes configured.")

	// --- Session-aware routes; services reject anonymous callers where needed ---
	api := e.Group("/api/v1")
	if deps.Config.AuthMode == config.AuthModeFirebase {
		api.Use(middleware.FirebaseAuthMiddleware(deps.Verifier))
	} else {
		api.Use(middleware.JWTAuthMiddleware(deps.Config.JWTSecret))
	}
	log.Debug().Str("auth_mode", deps.Config.AuthMode).Msg("Session middleware applied to /api/v1 group.")

	handlers.NewUserHandler(identity, profile).RegisterProfileRoutes(api)
	handlers.NewFollowHandler(graph).RegisterFollowRoutes(api)
	handlers.NewPostHandler(content).RegisterPostRoutes(api)
	handlers.NewCommentHandler(content).RegisterCommentRoutes(api)
	handlers.NewLikeHandler(interaction).RegisterLikeRoutes(api)
	handlers.NewNotificationHandler(notificationSvc).RegisterNotificationRoutes(api)

	log.Info().Msg("All routes configured.")
}
