// Package server contains the HTTP handlers for the portfolio API.
package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/middleware"
	"portfolio/internal/models"
	"portfolio/internal/observability"
	"portfolio/internal/repository"
	"portfolio/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	blogRepo    repository.BlogRepository
	projectRepo repository.ProjectRepository
	contactRepo repository.ContactRepository

	userService    *service.UserService
	blogService    *service.BlogService
	projectService *service.ProjectService
	contactService *service.ContactService
	uploadService  *service.UploadService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return NewServerWithDeps(cfg, db)
}

// NewServerWithDeps creates a Server using an already-initialized
// database handle. Use this in tests or when a bootstrap layer
// establishes the connection first.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	contactRepo := repository.NewContactRepository(db)

	prom := middleware.InitMetrics("portfolio-api")

	server := &Server{
		config:         cfg,
		db:             db,
		promMiddleware: prom,
		userRepo:       userRepo,
		blogRepo:       blogRepo,
		projectRepo:    projectRepo,
		contactRepo:    contactRepo,
	}
	server.userService = service.NewUserService(userRepo, cfg.JWTSecret)
	server.blogService = service.NewBlogService(blogRepo, cfg.SiteAuthor)
	server.projectService = service.NewProjectService(projectRepo)
	server.contactService = service.NewContactService(contactRepo)
	server.uploadService = service.NewUploadService(cfg.UploadDir, int64(cfg.MaxUploadMB)*1024*1024)

	return server, nil
}

// Shutdown releases server resources. The Fiber app itself is shut
// down by the caller before this runs.
func (s *Server) Shutdown(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Uploaded files are served directly from disk
	app.Static("/uploads", s.config.UploadDir)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", s.Login)
	auth.Post("/register", s.AuthRequired(), s.Register)
	auth.Get("/verify", s.AuthRequired(), s.VerifyAuth)
	auth.Get("/profile", s.AuthRequired(), s.GetProfile)
	auth.Put("/profile", s.AuthRequired(), s.UpdateProfile)
	auth.Put("/change-password", s.AuthRequired(), s.ChangePassword)

	// Blog routes. Admin paths are registered before the generic
	// /:slug route so "admin" is never treated as a slug.
	blogs := api.Group("/blogs")
	blogs.Get("/", s.GetBlogs)
	blogs.Get("/admin/all", s.AuthRequired(), s.GetAllBlogs)
	blogs.Get("/admin/:id", s.AuthRequired(), s.GetBlogByID)
	blogs.Post("/", s.AuthRequired(), s.CreateBlog)
	blogs.Put("/:id", s.AuthRequired(), s.UpdateBlog)
	blogs.Delete("/:id", s.AuthRequired(), s.DeleteBlog)
	blogs.Get("/:slug", s.GetBlogBySlug)

	// Project routes. Meta paths before the generic /:id route.
	projects := api.Group("/projects")
	projects.Get("/", s.GetProjects)
	projects.Get("/meta/categories", s.GetProjectCategories)
	projects.Get("/meta/technologies", s.GetProjectTechnologies)
	projects.Post("/", s.AuthRequired(), s.CreateProject)
	projects.Put("/:id", s.AuthRequired(), s.UpdateProject)
	projects.Delete("/:id", s.AuthRequired(), s.DeleteProject)
	projects.Get("/:id", s.GetProject)

	// Contact routes. Submission is public, everything else is the
	// admin inbox.
	contact := api.Group("/contact")
	contact.Post("/", s.SubmitContact)
	contact.Get("/", s.AuthRequired(), s.GetContacts)
	contact.Get("/:id", s.AuthRequired(), s.GetContact)
	contact.Patch("/:id/read", s.AuthRequired(), s.MarkContactRead)
	contact.Post("/:id/reply", s.AuthRequired(), s.ReplyContact)
	contact.Delete("/:id", s.AuthRequired(), s.DeleteContact)

	// Upload routes
	upload := api.Group("/upload", s.AuthRequired())
	upload.Post("/image", s.UploadImage)
	upload.Post("/images", s.UploadImages)
	upload.Post("/video", s.UploadVideo)
	upload.Get("/info/:filename", s.GetUploadInfo)
	upload.Delete("/:filename", s.DeleteUpload)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Portfolio API",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. The user record
// behind the token is re-fetched on every request, so deactivating an
// account takes effect immediately even for tokens that are still
// within their validity window.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			observability.AuthFailures.WithLabelValues("missing_token").Inc()
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Access denied. No token provided."))
		}

		caller, err := s.userService.VerifyToken(tokenString)
		if err != nil {
			observability.AuthFailures.WithLabelValues("invalid_token").Inc()
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}

		user, err := s.userRepo.GetByID(c.Context(), caller.UserID)
		if err != nil || !user.IsActive {
			observability.AuthFailures.WithLabelValues("inactive_user").Inc()
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token. User not found or inactive."))
		}

		// Identity reflects the current user record, not the claims.
		caller.Email = user.Email
		caller.Role = user.Role

		c.Locals("caller", caller)
		c.Locals("userID", caller.UserID)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, caller.UserID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}
