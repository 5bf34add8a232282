package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PingResponse represents the response for the ping endpoint
type PingResponse struct {
	Message string `json:"message" example:"pong"` // Response message
}

// handlePing godoc
// @Summary Ping health check
// @Description Check if the API is running
// @Tags health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /ping [get]
func (app *App) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Message: "pong",
	})
}

// handleHealth godoc
// @Summary Upstream health
// @Description Report the health of the plan lookup API
// @Tags health
// @Produce json
// @Success 200 {object} types.HealthResponse
// @Failure 502 {object} map[string]string
// @Router /health [get]
func (app *App) handleHealth(c *gin.Context) {
	health, err := app.client.Health(c.Request.Context())
	if err != nil {
		app.logger.Error("upstream health check failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, health)
}
