package main

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"medi-plans/internal/scanner"
)

const maxScanBodyBytes = 4 << 20

// TooltipResponse carries the tooltip for a clicked ZIP code
type TooltipResponse struct {
	ZipCode string `json:"zip_code" example:"03301"` // Clicked ZIP code
	HTML    string `json:"html"`                     // Rendered tooltip fragment
}

// handleScan godoc
// @Summary Annotate an HTML page
// @Description Mark every element whose text contains a ZIP code as clickable
// @Tags scanner
// @Accept html
// @Produce html
// @Success 200 {string} string
// @Failure 400 {object} map[string]string
// @Router /scan [post]
func (app *App) handleScan(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxScanBodyBytes)

	var out bytes.Buffer
	matches, err := scanner.Annotate(body, &out)
	if err != nil {
		app.logger.Warn("failed to annotate page", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app.logger.Debug("page annotated", "matches", len(matches))

	c.Header("X-Zip-Matches", strconv.Itoa(len(matches)))
	c.Data(http.StatusOK, "text/html; charset=utf-8", out.Bytes())
}

// handleScanClick godoc
// @Summary Tooltip for a clicked ZIP code
// @Description Look up the summary plans of a clicked ZIP code and return the tooltip HTML
// @Tags scanner
// @Produce json
// @Param zip path string true "ZIP code or ZIP+4"
// @Success 200 {object} TooltipResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /scan/click/{zip} [get]
func (app *App) handleScanClick(c *gin.Context) {
	zipCode := c.Param("zip")

	tooltip, err := app.pageScanner.Click(c.Request.Context(), zipCode)
	if err != nil {
		app.logger.Warn("zip click failed", "zip_code", zipCode, "error", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, TooltipResponse{
		ZipCode: zipCode,
		HTML:    tooltip,
	})
}
