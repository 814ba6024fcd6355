package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gigsly/gigsly-client/internal/api/handler"
	"github.com/gigsly/gigsly-client/internal/api/middleware"
	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
	"github.com/gigsly/gigsly-client/internal/core/service"
	mongorepo "github.com/gigsly/gigsly-client/internal/infrastructure/db/mongo"
	"github.com/gigsly/gigsly-client/internal/infrastructure/http/handlers"
)

// Dependencies is everything the router needs. Mongo and Redis are only used
// by the readiness probe; Redis may be nil.
type Dependencies struct {
	AuthService     ports.AuthService
	TaskService     ports.TaskService
	ProposalService ports.ProposalService
	FeedbackService ports.FeedbackService
	JWTSecret       string

	Mongo *mongo.Database
	Redis redis.UniversalClient

	// Registerer receives the HTTP metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
}

// NewRouter wires the Mongo repositories and services and returns the router.
func NewRouter(db *mongo.Database, rdb redis.UniversalClient, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	tasks := mongorepo.NewTaskRepository(db)

	return New(Dependencies{
		AuthService:     service.NewAuthService(mongorepo.NewAuthRepository(db), jwtSecret, tokenTTL),
		TaskService:     service.NewTaskService(tasks, log),
		ProposalService: service.NewProposalService(mongorepo.NewProposalRepository(db), tasks, log),
		FeedbackService: service.NewFeedbackService(mongorepo.NewFeedbackRepository(db), tasks, log),
		JWTSecret:       jwtSecret,
		Mongo:           db,
		Redis:           rdb,
	}, log)
}

// New builds the Echo instance with all routes registered.
func New(deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "devserver",
		Registerer: registerer,
	}))

	authHandler := handler.NewAuthHandler(deps.AuthService)
	taskHandler := handler.NewTaskHandler(deps.TaskService)
	proposalHandler := handler.NewProposalHandler(deps.ProposalService)
	feedbackHandler := handler.NewFeedbackHandler(deps.FeedbackService)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/categories", feedbackHandler.Categories)
	api.POST("/contact-queries", feedbackHandler.ContactQuery)

	protected := api.Group("", middleware.Auth(deps.JWTSecret))
	protected.GET("/auth/me", authHandler.Me)
	protected.GET("/users", authHandler.ListUsers)

	// --- Task routes ---
	protected.GET("/tasks", taskHandler.List)
	protected.GET("/tasks/mine", taskHandler.Mine, middleware.RBAC(domain.ActionMyTasks))
	protected.POST("/tasks", taskHandler.Create, middleware.RBAC(domain.ActionPostTask))
	protected.POST("/tasks/:id/status", taskHandler.UpdateStatus)

	// --- Proposal routes ---
	protected.POST("/proposals", proposalHandler.Submit, middleware.RBAC(domain.ActionApply))
	protected.GET("/proposals/mine", proposalHandler.Mine, middleware.RBAC(domain.ActionMyProposals))
	protected.GET("/proposals/task/:id", proposalHandler.ForTask, middleware.RBAC(domain.ActionManageTaskProposals))
	protected.POST("/proposals/:id/status", proposalHandler.UpdateStatus)

	protected.POST("/reviews", feedbackHandler.LeaveReview, middleware.RBAC(domain.ActionLeaveFeedback))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
