package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/taskboard/board-service/internal/api/handler"
	"github.com/taskboard/board-service/internal/api/middleware"
	"github.com/taskboard/board-service/internal/core/domain"
	"github.com/taskboard/board-service/internal/core/ports"
	"github.com/taskboard/board-service/internal/pkg/metrics"
)

// Dependencies are the collaborators the HTTP surface is built from.
type Dependencies struct {
	Resolver  ports.AccessResolver
	Reminders ports.ReminderService
	Sweeper   handler.SweepRunner
	// Checks are the readiness probes, keyed by dependency name.
	Checks    map[string]handler.Check
	JWTSecret string
	Log       zerolog.Logger
	// Registerer receives the HTTP collectors. Defaults to the global registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:          metrics.Namespace,
		Subsystem:          "http",
		Registerer:         deps.Registerer,
		StatusCodeResolver: statusCode,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Health probes and tooling (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Checks, deps.Log)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Authenticated API ---
	accessHandler := handler.NewAccessHandler(deps.Resolver)
	reminderHandler := handler.NewReminderHandler(deps.Reminders, deps.Sweeper)

	v1 := e.Group("/v1", middleware.Auth(deps.JWTSecret))

	v1.GET("/boards/:board_id/access", accessHandler.Board)
	v1.GET("/lists/:list_id/access", accessHandler.List)
	v1.GET("/cards/:card_id/access", accessHandler.Card)

	v1.GET("/me/cards/due", reminderHandler.DueCards)
	v1.POST("/cards/:card_id/reminders", reminderHandler.SendReminder,
		middleware.RequireBoardRole(deps.Resolver, domain.PathCard, "card_id", domain.RoleEditor))

	admin := v1.Group("/admin", middleware.RequireAccountRole(domain.UserRoleAdmin))
	admin.POST("/reminders/sweep", reminderHandler.Sweep)

	return e
}

// requestLogger emits one structured entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Warn()
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
