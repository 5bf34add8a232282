package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"medi-plans/internal/render"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoints
	app.router.GET("/ping", app.handlePing)
	app.router.GET("/health", app.handleHealth)

	// Listings
	app.router.GET("/states", app.handleStates)
	app.router.GET("/states/:state/counties", app.handleCounties)

	// Popup pages
	popup := app.router.Group(render.PopupPath)
	popup.GET("", app.handlePopup)
	popup.GET("/lookup", app.handleLookup)
	popup.GET("/:state/:zip/county/:county", app.handleSelectCounty)
	popup.GET("/:state/plan/:planId", app.handlePlanDetail)

	// Message relay
	app.router.POST("/relay", app.handleRelay)

	// Page scanner
	app.router.POST("/scan", app.handleScan)
	app.router.GET("/scan/click/:zip", app.handleScanClick)

	// Metrics
	app.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{})))

	// Swagger documentation
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(301, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}
