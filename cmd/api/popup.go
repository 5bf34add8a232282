package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medi-plans/internal/plans"
	"medi-plans/internal/render"
)

const missingInputMessage = "Please enter a ZIP code and select a state"

// handlePopup godoc
// @Summary Plan finder page
// @Description Render the plan finder page with the ZIP code and state form
// @Tags popup
// @Produce html
// @Success 200 {string} string
// @Router /popup [get]
func (app *App) handlePopup(c *gin.Context) {
	app.renderPage(c, c.Query("state"), c.Query("zip"), "")
}

// handleLookup godoc
// @Summary Look up plans
// @Description Look up plans for a ZIP code; multi-county ZIP codes render a county picker
// @Tags popup
// @Produce html
// @Param state query string false "Two-letter state code"
// @Param zip query string false "ZIP code"
// @Success 200 {string} string
// @Router /popup/lookup [get]
func (app *App) handleLookup(c *gin.Context) {
	state := strings.TrimSpace(c.Query("state"))
	zipCode := strings.TrimSpace(c.Query("zip"))

	if state == "" || zipCode == "" {
		app.renderPage(c, state, zipCode, render.Message(missingInputMessage))
		return
	}

	result, err := app.plansService.Lookup(c.Request.Context(), state, zipCode)
	if err != nil {
		app.logger.Error("lookup failed", "state", state, "zip_code", zipCode, "error", err)
		app.renderPage(c, state, zipCode, render.Error(err))
		return
	}

	var fragment string
	switch {
	case result.NeedsCountySelection:
		fragment, err = render.CountySelection(result.Response)
	case result.County != "":
		fragment, err = render.Plans(state, result.County, result.Group)
	default:
		fragment, err = render.NoPlans(result.Response.ZipCode)
	}
	if err != nil {
		app.renderError(c, err)
		return
	}

	app.renderPage(c, state, zipCode, fragment)
}

// handleSelectCounty godoc
// @Summary Plans for a county
// @Description Render the plans of one county with full details
// @Tags popup
// @Produce html
// @Param state path string true "Two-letter state code"
// @Param zip path string true "ZIP code"
// @Param county path string true "County name"
// @Param include_details query string false "1 to load scraped plan details"
// @Success 200 {string} string
// @Router /popup/{state}/{zip}/county/{county} [get]
func (app *App) handleSelectCounty(c *gin.Context) {
	state := c.Param("state")
	zipCode := c.Param("zip")
	county := c.Param("county")
	includeDetails := c.Query("include_details") == "1"

	group, err := app.plansService.SelectCounty(c.Request.Context(), state, zipCode, county, includeDetails)
	if err != nil {
		if !errors.Is(err, plans.ErrCountyNotFound) {
			app.logger.Error("county selection failed", "state", state, "zip_code", zipCode, "county", county, "error", err)
		}
		app.renderPage(c, state, zipCode, render.Error(err))
		return
	}

	fragment, err := render.Plans(state, county, *group)
	if err != nil {
		app.renderError(c, err)
		return
	}

	app.renderPage(c, state, zipCode, fragment)
}

// handlePlanDetail godoc
// @Summary Plan detail
// @Description Render every detail section of a single plan
// @Tags popup
// @Produce html
// @Param state path string true "Two-letter state code"
// @Param planId path string true "Contract plan segment ID"
// @Success 200 {string} string
// @Router /popup/{state}/plan/{planId} [get]
func (app *App) handlePlanDetail(c *gin.Context) {
	state := c.Param("state")
	planID := c.Param("planId")

	detail, err := app.plansService.PlanDetail(c.Request.Context(), state, planID)
	if err != nil {
		app.logger.Error("plan detail failed", "state", state, "plan_id", planID, "error", err)
		app.renderPage(c, state, "", render.Error(err))
		return
	}

	fragment, err := render.PlanDetail(detail)
	if err != nil {
		app.renderError(c, err)
		return
	}

	app.renderPage(c, state, "", fragment)
}

// renderPage wraps a results fragment in the popup document. A failed state
// listing still renders the form, with the error above the results.
func (app *App) renderPage(c *gin.Context, state, zipCode, results string) {
	states, err := app.plansService.States(c.Request.Context())
	if err != nil {
		app.logger.Warn("failed to load states", "error", err)
		results = render.Error(err) + results
	}

	page, err := render.Page(states, state, zipCode, results)
	if err != nil {
		app.renderError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (app *App) renderError(c *gin.Context, err error) {
	app.logger.Error("failed to render page", "error", err)
	c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(render.Error(err)))
}
