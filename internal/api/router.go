package api

import (
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/q815101630/flaska/internal/api/handler"
	"github.com/q815101630/flaska/internal/api/middleware"
	"github.com/q815101630/flaska/internal/core/domain"
	"github.com/q815101630/flaska/internal/core/ports"
	"github.com/q815101630/flaska/internal/core/service"
	"github.com/q815101630/flaska/internal/infrastructure/db/postgres"
	redisinfra "github.com/q815101630/flaska/internal/infrastructure/db/redis"
	"github.com/q815101630/flaska/internal/pkg/config"
)

// NewRouter builds the Echo instance with every route registered.
func NewRouter(db *sqlx.DB, rdb *redis.Client, mailQueue ports.MailQueue, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("flaska"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	followRepo := postgres.NewFollowRepository(db)
	blogRepo := postgres.NewBlogRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	sessions := redisinfra.NewSessionStore(rdb)

	tokenSvc := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := service.NewAuthService(userRepo, roleRepo, tokenSvc, mailQueue, sessions, cfg.JWTSecret, cfg.SessionTTL, log)
	userSvc := service.NewUserService(userRepo, roleRepo, log)
	followSvc := service.NewFollowService(followRepo, userRepo, cfg.FollowersPerPage, log)
	blogSvc := service.NewBlogService(blogRepo, userRepo, cfg.BlogsPerPage, log)
	commentSvc := service.NewCommentService(commentRepo, blogRepo, cfg.CommentsPerPage, log)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc, followSvc)
	blogHandler := handler.NewBlogHandler(blogSvc, commentSvc)

	authed := middleware.Authenticate(cfg.JWTSecret, sessions, userRepo)
	confirmed := middleware.RequireConfirmed()

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authed)
	e.POST("/auth/confirm", authHandler.ResendConfirmation, authed)
	e.POST("/auth/confirm/:token", authHandler.Confirm, authed)
	e.POST("/auth/password", authHandler.ChangePassword, authed)
	e.POST("/auth/password-reset", authHandler.RequestPasswordReset)
	e.POST("/auth/password-reset/:token", authHandler.ResetPassword)
	e.POST("/auth/email", authHandler.RequestEmailChange, authed)
	e.POST("/auth/email/:token", authHandler.ConfirmEmailChange, authed)

	// --- Profiles ---
	e.GET("/me", userHandler.Me, authed)
	e.PUT("/profile", userHandler.UpdateProfile, authed, confirmed)
	e.GET("/users/:name", userHandler.Profile)

	// --- Follow graph ---
	canFollow := middleware.RequirePermission(domain.PermissionFollow)
	e.POST("/users/:name/follow", userHandler.Follow, authed, confirmed, canFollow)
	e.DELETE("/users/:name/follow", userHandler.Unfollow, authed, confirmed, canFollow)
	e.GET("/users/:name/follow", userHandler.FollowStatus, authed)
	e.GET("/users/:name/followers", userHandler.Followers)
	e.GET("/users/:name/following", userHandler.Following)

	// --- Blogs and comments ---
	canWrite := middleware.RequirePermission(domain.PermissionWrite)
	canComment := middleware.RequirePermission(domain.PermissionComment)
	canModerate := middleware.RequirePermission(domain.PermissionModerate)

	e.GET("/blogs", blogHandler.List)
	e.POST("/blogs", blogHandler.Create, authed, confirmed, canWrite)
	e.GET("/blogs/:id", blogHandler.Get)
	e.PUT("/blogs/:id", blogHandler.Update, authed, confirmed, canWrite)
	e.GET("/users/:name/blogs", blogHandler.ByAuthor)
	e.GET("/feed", blogHandler.Feed, authed)

	e.GET("/blogs/:id/comments", blogHandler.ListComments)
	e.POST("/blogs/:id/comments", blogHandler.CreateComment, authed, confirmed, canComment)
	e.PATCH("/comments/:id/disable", blogHandler.DisableComment, authed, confirmed, canModerate)
	e.PATCH("/comments/:id/enable", blogHandler.EnableComment, authed, confirmed, canModerate)

	// --- Administration ---
	isAdmin := middleware.RequirePermission(domain.PermissionAdminister)
	e.PUT("/admin/users/:id", userHandler.AdminUpdateProfile, authed, confirmed, isAdmin)
	e.DELETE("/admin/users/:id", userHandler.AdminDelete, authed, confirmed, isAdmin)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	// liveness: is the process alive? readiness: are dependencies up?
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
