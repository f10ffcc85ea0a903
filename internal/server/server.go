package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"example.com/finance-tracker/backend/internal/auth"
	"example.com/finance-tracker/backend/internal/closing"
	"example.com/finance-tracker/backend/internal/config"
	"example.com/finance-tracker/backend/internal/handlers"
	"example.com/finance-tracker/backend/internal/notifications"
	"example.com/finance-tracker/backend/internal/store"
)

// New собирает HTTP-сервер Echo с роутами и зависимостями.
func New(cfg config.Config, logger *slog.Logger, st store.Store) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	sessionManager := auth.NewSessionManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.SessionTTL)
	data := store.NewCollections(st)
	hub := notifications.NewHub()

	closureService := closing.NewClosureService(data)
	rolloverService := closing.NewRolloverService(data)

	authHandler := handlers.NewAuthHandler(cfg.Auth.PIN, cfg.Auth.PINHash, sessionManager)
	dataHandler := handlers.NewDataHandler(st, hub)
	monthHandler := handlers.NewMonthHandler(data, closureService, rolloverService, hub)
	statsHandler := handlers.NewStatsHandler(data)
	exportHandler := handlers.NewExportHandler(data)
	eventHandler := handlers.NewEventHandler(hub)

	registerRoutes(
		e,
		authHandler,
		dataHandler,
		monthHandler,
		statsHandler,
		exportHandler,
		eventHandler,
		auth.SessionMiddleware(sessionManager),
		authRateLimiter(cfg.Auth),
	)

	return e
}

// NewHTTPServer создает net/http сервер с заданными таймаутами.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func authRateLimiter(cfg config.AuthConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	limiterStore := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(limiterStore)
}
