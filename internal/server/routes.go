package server

import (
	"github.com/labstack/echo/v4"

	"example.com/finance-tracker/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	dataHandler *handlers.DataHandler,
	monthHandler *handlers.MonthHandler,
	statsHandler *handlers.StatsHandler,
	exportHandler *handlers.ExportHandler,
	eventHandler *handlers.EventHandler,
	sessionMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")

	authGroup := api.Group("/auth", authRateLimiter)
	authGroup.POST("/login", authHandler.Login)

	data := api.Group("/data", sessionMiddleware)
	data.GET("/:collection", dataHandler.Get)
	data.POST("/:collection", dataHandler.Set)

	months := api.Group("/months", sessionMiddleware)
	months.GET("/:month", monthHandler.Status)
	months.POST("/:month/close", monthHandler.Close)
	months.POST("/:month/rollover", monthHandler.CopyToNext)

	stats := api.Group("/stats", sessionMiddleware)
	stats.GET("/overview", statsHandler.Overview)
	stats.GET("/variance", statsHandler.Variance)
	stats.GET("/zakat", statsHandler.Zakat)
	stats.GET("/trip", statsHandler.Trip)

	export := api.Group("/export", sessionMiddleware)
	export.GET("/closed-months.csv", exportHandler.ClosedMonthsCSV)
	export.GET("/expense-history.csv", exportHandler.ExpenseHistoryCSV)

	events := api.Group("/events", sessionMiddleware)
	events.GET("/stream", eventHandler.Stream)
}
