package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleStates godoc
// @Summary List states
// @Description List the states served by the plan lookup API
// @Tags listing
// @Produce json
// @Success 200 {array} types.StateInfo
// @Failure 502 {object} map[string]string
// @Router /states [get]
func (app *App) handleStates(c *gin.Context) {
	states, err := app.plansService.States(c.Request.Context())
	if err != nil {
		app.logger.Error("failed to list states", "error", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, states)
}

// handleCounties godoc
// @Summary List counties
// @Description List the counties of a state with their plan counts
// @Tags listing
// @Produce json
// @Param state path string true "Two-letter state code"
// @Success 200 {array} types.CountyInfo
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /states/{state}/counties [get]
func (app *App) handleCounties(c *gin.Context) {
	state := c.Param("state")

	counties, err := app.plansService.Counties(c.Request.Context(), state)
	if err != nil {
		app.logger.Error("failed to list counties", "state", state, "error", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, counties)
}
