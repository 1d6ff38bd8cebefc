package server

import (
	"io"
	"net/http"

	"github.com/formgate/formgate/internal/api/dto/common"
	"github.com/formgate/formgate/internal/api/handlers"
	"github.com/formgate/formgate/internal/api/middleware"
	"github.com/formgate/formgate/internal/config"
	"github.com/formgate/formgate/internal/logging"
	"github.com/formgate/formgate/internal/ratelimit"
	"github.com/formgate/formgate/internal/repository"
	"github.com/formgate/formgate/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	rdb    *redis.Client
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, rdb *redis.Client) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our own
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	router := gin.New()

	// The handler must never propagate a fault to its invoker: panics
	// anywhere in the pipeline become a SERVER_ERROR envelope.
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logging.GetLogger().Error("Recovered from panic: %v", recovered)
		c.JSON(http.StatusInternalServerError, common.NewServerErrorResponse(
			"An unexpected error occurred. Please try again later."))
	}))

	return &Server{
		router: router,
		cfg:    cfg,
		rdb:    rdb,
	}
}

// Init wires middleware, services and routes.
func (s *Server) Init() {
	limiter := ratelimit.New(
		ratelimit.NewRedisStore(s.rdb, s.cfg.RateLimitPrefix),
		s.cfg.MaxHourly,
		s.cfg.MaxDaily,
	)

	kv := repository.NewRedisKV(s.rdb)
	repo := repository.NewSubmissionRepository(kv, s.cfg.SubmissionPrefix, s.cfg.SubmissionRetention)

	mailer := service.NewMailer(
		service.MailerConfig{
			SenderEmail:       s.cfg.SenderEmail,
			SenderName:        s.cfg.SenderName,
			NotificationEmail: s.cfg.NotificationEmail,
			WebsiteName:       s.cfg.WebsiteName,
			WebsiteURL:        s.cfg.WebsiteURL,
		},
		service.NewSMTPSender(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUsername, s.cfg.SMTPPassword),
	)

	contactService := service.NewContactService(limiter, repo, mailer)
	contactHandler := handlers.NewContactHandler(contactService)
	healthHandler := handlers.NewHealthHandler(kv)

	s.router.Use(middleware.CORS(s.cfg.AllowedOrigin))
	s.router.Use(middleware.BurstLimit(middleware.BurstLimitConfig{
		RPS:   s.cfg.BurstRPS,
		Burst: s.cfg.BurstSize,
	}))
	s.router.Use(middleware.RequestLogger())

	s.router.GET("/health", healthHandler.Check)

	public := s.router.Group("/api/v1")
	{
		public.POST("/contact", contactHandler.Submit)
	}
}

// Start starts the server
func (s *Server) Start() error {
	return s.router.Run(":" + s.cfg.Port)
}
