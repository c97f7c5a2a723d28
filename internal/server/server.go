// Package server contains the HTTP handlers and route wiring for the travel journal API.
package server

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"odyssey/internal/cache"
	"odyssey/internal/config"
	"odyssey/internal/middleware"
	"odyssey/internal/models"
	"odyssey/internal/observability"
	"odyssey/internal/repository"
	"odyssey/internal/seed"
	"odyssey/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

// formOverhead is the allowance for multipart framing and text fields on top of the file limit.
const formOverhead = 1 << 20

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// Server holds all dependencies and provides handlers
type Server struct {
	config             *config.Config
	redis              *redis.Client
	promMiddleware     *fiberprometheus.FiberPrometheus
	postRepo           repository.PostRepository
	blogRepo           repository.BlogRepository
	uploadService      *service.UploadService
	destinationService *service.DestinationService
	postService        *service.PostService
	blogService        *service.BlogService
	photoService       *service.PhotoService
}

// NewServer connects to Redis (when configured), seeds fresh stores and
// builds the server.
func NewServer(cfg *config.Config) (*Server, error) {
	if err := os.MkdirAll(cfg.PublicDir, 0o750); err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)

	var (
		posts []models.Post
		blogs []models.BlogEntry
	)
	now := time.Now()
	if cfg.SeedDemoContent {
		posts = append(posts, seed.Posts(now)...)
		blogs = append(blogs, seed.Blogs(now)...)
	}
	if cfg.SeedFakeMoments > 0 {
		posts = append(posts, seed.FakeMoments(cfg.SeedFakeMoments, now, now.UnixNano())...)
	}

	postRepo := repository.NewPostRepository(nil, posts...)
	blogRepo := repository.NewBlogRepository(nil, blogs...)

	return NewServerWithDeps(cfg, cache.GetClient(), postRepo, blogRepo), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil.
func NewServerWithDeps(cfg *config.Config, redisClient *redis.Client, posts repository.PostRepository, blogs repository.BlogRepository) *Server {
	uploads := service.NewUploadService(cfg)
	destinations := service.NewDestinationService(posts)

	return &Server{
		config:             cfg,
		redis:              redisClient,
		promMiddleware:     middleware.InitMetrics(observability.ServiceName),
		postRepo:           posts,
		blogRepo:           blogs,
		uploadService:      uploads,
		destinationService: destinations,
		postService:        service.NewPostService(posts, uploads),
		blogService:        service.NewBlogService(blogs, uploads),
		photoService:       service.NewPhotoService(posts, destinations, uploads),
	}
}

// StartJanitor schedules the sweep of abandoned staged uploads.
func (s *Server) StartJanitor(ctx context.Context) error {
	return s.uploadService.StartJanitor(ctx, s.config.UploadJanitorSchedule)
}

// NewApp builds the Fiber app with middleware and routes.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Odyssey API",
		BodyLimit:    int(s.config.UploadMaxSizeBytes()) + formOverhead,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
		JSONEncoder:  jsonCodec.Marshal,
		JSONDecoder:  jsonCodec.Unmarshal,
		ErrorHandler: s.errorHandler,
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// errorHandler renders errors that escaped the handlers in the {"error": ...} shape.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
	}
	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err, "path", c.Path())
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Uploaded images are embedded by frontends on other origins.
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || s.config.Env == "test"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Odyssey API Metrics",
	}))

	creates := middleware.NewCreateLimiter(s.redis, s.config.Env, middleware.FailOpen)
	createLimit := func(name string) fiber.Handler {
		return creates.Handler(name, s.config.CreateRateLimit, time.Minute)
	}

	api.Get("/home", s.GetHome)

	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Post("/", createLimit("create_post"), s.CreatePost)

	blogs := api.Group("/blogs")
	blogs.Get("/", s.GetBlogs)
	blogs.Post("/", createLimit("create_blog"), s.CreateBlog)

	destinations := api.Group("/destinations")
	destinations.Get("/", s.GetDestinations)
	destinations.Get("/:slug", s.GetDestination)

	api.Post("/photos", createLimit("upload_photo"), s.UploadPhoto)

	// Uploaded files are public once committed; the staging dir never is.
	app.Static("/", s.config.PublicDir, fiber.Static{
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/"+service.StagingDirName)
		},
	})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports storage and Redis health. Redis is optional, so a
// server running without it is still ready.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	storageStatus := "healthy"
	if info, err := os.Stat(s.config.PublicDir); err != nil || !info.IsDir() {
		storageStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if storageStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"storage": storageStatus,
			"redis":   redisStatus,
		},
		"time": time.Now(),
	})
}
