package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bondledger/prizebond-api/docs"
	"github.com/bondledger/prizebond-api/internal/api/handler"
	"github.com/bondledger/prizebond-api/internal/api/middleware"
	"github.com/bondledger/prizebond-api/internal/core/ports"
	"github.com/bondledger/prizebond-api/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs. Mongo and Redis are only used by
// the readiness probe; a nil Redis reports as disabled.
type Deps struct {
	Logger   zerolog.Logger
	Auth     ports.AuthService
	Cards    ports.CardService
	Sessions ports.SessionVerifier

	SessionTTL   time.Duration
	SecureCookie bool
	WebRoot      string

	Mongo handlers.Pinger
	Redis handlers.Pinger

	// Registry receives the HTTP metrics. Defaults to the global registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
	}))
	e.Use(middleware.Guard(d.Sessions))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.SessionTTL, d.SecureCookie)
	cardHandler := handler.NewCardHandler(d.Cards)
	bondHandler := handler.NewBondHandler(d.Cards)
	session := middleware.Session(d.Sessions)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	// --- Card and bond routes (session required) ---
	cards := e.Group("/api/card", session)
	cards.GET("", cardHandler.List)
	cards.POST("", cardHandler.Create)
	cards.PATCH("/:cardId", cardHandler.Rename)
	cards.DELETE("/:cardId", cardHandler.Delete)
	cards.GET("/:cardId/bonds", bondHandler.List)
	cards.POST("/:cardId/bonds", bondHandler.Add)
	cards.POST("/:cardId/bonds/batch-delete", bondHandler.BatchDelete)
	cards.PUT("/:cardId/bonds/:bondId", bondHandler.Update)
	cards.DELETE("/:cardId/bonds/:bondId", bondHandler.Delete)

	e.GET("/api/bonds/search", bondHandler.Search, session)

	// --- Pages (access decided by Guard) ---
	if d.WebRoot != "" {
		pages := handler.NewPageHandler(d.WebRoot)
		e.GET("/", pages.Serve("index.html"))
		e.GET("/login", pages.Serve("login.html"))
		e.GET("/register", pages.Serve("register.html"))
		e.GET("/cards/:cardId", pages.Serve("card.html"))
		e.Static("/assets", pages.Assets())
	}

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
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
