// Package server contains the HTTP handlers and routing for the API.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recshelf/internal/auth"
	"recshelf/internal/cache"
	"recshelf/internal/config"
	"recshelf/internal/database"
	"recshelf/internal/middleware"
	"recshelf/internal/models"
	"recshelf/internal/observability"
	"recshelf/internal/repository"
	"recshelf/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	authService           *service.AuthService
	userService           *service.UserService
	catalogService        *service.CatalogService
	recommendationService *service.RecommendationService
	commentService        *service.CommentService
	reactionService       *service.ReactionService
}

// NewServer connects to the database and Redis and builds the server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return NewServerWithDeps(cfg, db, cache.InitRedis(context.Background(), cfg.RedisURL))
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil; token revocation and rate limiting then switch off.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}

	userRepo := repository.NewUserRepository(db)
	fictionTypeRepo := repository.NewFictionTypeRepository(db)
	tagRepo := repository.NewTagRepository(db)
	recRepo := repository.NewRecommendationRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)

	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.AccessTokenExpireHours)*time.Hour)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics(observability.ServiceName),

		authService:           service.NewAuthService(userRepo, tokens, cache.NewTokenBlacklist(redisClient)),
		userService:           service.NewUserService(userRepo),
		catalogService:        service.NewCatalogService(fictionTypeRepo, tagRepo),
		recommendationService: service.NewRecommendationService(recRepo, fictionTypeRepo, tagRepo),
		commentService:        service.NewCommentService(commentRepo, recRepo),
		reactionService:       service.NewReactionService(reactionRepo, recRepo),
	}, nil
}

// App builds the fiber application once and returns it.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}
	app := fiber.New(fiber.Config{
		AppName:      "recshelf",
		BodyLimit:    1 * 1024 * 1024,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// errorHandler turns anything a handler returned into the standard body.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code >= fiber.StatusInternalServerError {
			logServerError(c, err)
			return models.RespondWithError(c, fiberErr.Code, models.WrapInternal(err))
		}
		return models.RespondWithError(c, fiberErr.Code, &models.AppError{
			Code:    httpCode(fiberErr.Code),
			Message: fiberErr.Message,
		})
	}
	return respond(c, err)
}

func httpCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return models.CodeNotFound
	case fiber.StatusUnauthorized:
		return models.CodeUnauthorized
	case fiber.StatusForbidden:
		return models.CodeForbidden
	case fiber.StatusTooManyRequests:
		return models.CodeRateLimited
	default:
		return models.CodeValidation
	}
}

func logServerError(c *fiber.Ctx, err error) {
	middleware.Logger.ErrorContext(c.UserContext(), "request error",
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so throttled responses still carry the headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || s.config.Env == "test"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				models.NewRateLimitError("Too many requests, please try again later."))
		},
	}))
}

var (
	registerRule = middleware.RateRule{Name: "register", Limit: 5, Window: 10 * time.Minute, Policy: middleware.FailOpen}
	tokenRule    = middleware.RateRule{Name: "token", Limit: 10, Window: 5 * time.Minute, Policy: middleware.FailOpen}
	commentRule  = middleware.RateRule{Name: "create_comment", Limit: 20, Window: time.Minute, Policy: middleware.FailOpen}
	reactionRule = middleware.RateRule{Name: "react", Limit: 60, Window: time.Minute, Policy: middleware.FailOpen}
)

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Root)
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	authRequired := s.AuthRequired()

	authGroup := app.Group("/auth")
	authGroup.Post("/register", middleware.RateLimit(s.redis, registerRule), s.Register)
	authGroup.Post("/token", middleware.RateLimit(s.redis, tokenRule), s.Token)
	authGroup.Post("/logout", authRequired, s.Logout)
	authGroup.Get("/users/me", authRequired, s.GetMe)
	authGroup.Patch("/users/me/update", authRequired, s.UpdateMe)
	authGroup.Delete("/users/me", authRequired, s.DeleteMe)

	fictionTypes := app.Group("/fiction-types")
	fictionTypes.Get("/", s.ListFictionTypes)
	fictionTypes.Post("/", authRequired, s.CreateFictionType)
	fictionTypes.Delete("/:id", authRequired, s.DeleteFictionType)

	tags := app.Group("/tags")
	tags.Get("/", s.ListTags)
	tags.Post("/", authRequired, s.CreateTag)

	recs := app.Group("/recommendations")
	recs.Get("/", s.ListRecommendations)
	recs.Post("/", authRequired, s.CreateRecommendation)

	// Define specific /:id/:resource routes BEFORE generic /:id route
	recs.Post("/:id/comments", authRequired, middleware.RateLimit(s.redis, commentRule), s.CreateComment)
	recs.Get("/:id/comments", s.ListComments)
	recs.Get("/:id/comments/:commentId", s.GetComment)
	recs.Put("/:id/comments/:commentId", authRequired, s.UpdateComment)
	recs.Delete("/:id/comments/:commentId", authRequired, s.DeleteComment)

	recs.Post("/:id/reactions", authRequired, middleware.RateLimit(s.redis, reactionRule), s.React)
	recs.Get("/:id/reactions", s.ListReactions)
	recs.Get("/:id/reactions/me", authRequired, s.GetMyReaction)
	recs.Delete("/:id/reactions/me", authRequired, s.DeleteMyReaction)

	recs.Get("/:id", s.GetRecommendation)
	recs.Patch("/:id", authRequired, s.UpdateRecommendation)
	recs.Delete("/:id", authRequired, s.DeleteRecommendation)
}

// Root handles GET /
func (s *Server) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "This is root of the API"})
}

// LivenessCheck handles liveness check requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now().UTC(),
	})
}

// ReadinessCheck reports database health and, when configured, Redis health.
// Redis is optional, so a missing client does not fail readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now().UTC(),
	})
}

// Start builds the app and blocks serving on the configured port.
func (s *Server) Start() error {
	app := s.App()
	middleware.Logger.Info("server starting", "port", s.config.Port, "env", s.config.Env)
	return app.Listen(":" + s.config.Port)
}

// Shutdown stops the listener and closes the database and Redis clients.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http: %w", err))
		}
	}
	if sqlDB, err := s.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	middleware.Logger.Info("server shutdown complete")
	return errors.Join(errs...)
}
