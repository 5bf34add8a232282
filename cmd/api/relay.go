package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medi-plans/internal/relay"
)

// handleRelay godoc
// @Summary Relay a plan request
// @Description Forward a getPlans or getPlanDetail message to the plan lookup API
// @Tags relay
// @Accept json
// @Produce json
// @Param request body relay.Request true "Relay message"
// @Success 200 {object} relay.Response
// @Failure 400 {object} relay.Response
// @Failure 503 {object} relay.Response
// @Router /relay [post]
func (app *App) handleRelay(c *gin.Context) {
	var req relay.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, relay.Response{Error: "invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	reply := make(chan relay.Response, 1)

	select {
	case app.relayInbox <- relay.Envelope{Ctx: ctx, Request: req, Reply: reply}:
	case <-ctx.Done():
		c.JSON(http.StatusServiceUnavailable, relay.Response{ID: req.ID, Error: ctx.Err().Error()})
		return
	}

	select {
	case resp := <-reply:
		c.JSON(http.StatusOK, resp)
	case <-ctx.Done():
		c.JSON(http.StatusServiceUnavailable, relay.Response{ID: req.ID, Error: ctx.Err().Error()})
	}
}
