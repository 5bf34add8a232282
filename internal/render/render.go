// Package render turns plan lookup results into HTML fragments for the popup,
// the plan detail page and the scanner tooltip.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"sort"
	"strings"

	"github.com/samber/lo"

	"medi-plans/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("render").Funcs(template.FuncMap{
		"nl2br": nl2br,
	}).ParseFS(templateFS, "templates/*.html"),
)

// PopupPath is the mount point of the popup pages; links in fragments point below it.
const PopupPath = "/popup"

// CountyURL links a county selection to the full-details plan list
func CountyURL(state, zipCode, county string) string {
	return fmt.Sprintf("%s/%s/%s/county/%s", PopupPath,
		url.PathEscape(strings.ToLower(state)), url.PathEscape(zipCode), url.PathEscape(county))
}

// PlanURL links a plan card to its detail page
func PlanURL(state, planID string) string {
	return fmt.Sprintf("%s/%s/plan/%s", PopupPath, url.PathEscape(strings.ToLower(state)), url.PathEscape(planID))
}

type countyOption struct {
	Name       string
	PlanCount  int
	Percentage string
	Href       string
}

type planCard struct {
	types.PlanEntry
	Href string
}

type plansView struct {
	County    string
	PlanCount int
	Plans     []planCard
}

type detailRow struct {
	Key   string
	Value string
}

type detailSection struct {
	Title string
	Rows  []detailRow
}

// ZipResult renders a lookup response: a county picker when the ZIP spans
// several counties, otherwise the plans of its only county.
func ZipResult(resp *types.ZipResponse) (string, error) {
	if resp.MultiCounty {
		return CountySelection(resp)
	}

	name, group, ok := resp.SingleCounty()
	if !ok {
		return NoPlans(resp.ZipCode)
	}

	return Plans(stateKey(resp), name, group)
}

// NoPlans renders the message shown when a ZIP has no counties
func NoPlans(zipCode string) (string, error) {
	return execute("no_plans", zipCode)
}

// CountySelection renders one selectable entry per county with its plan count
func CountySelection(resp *types.ZipResponse) (string, error) {
	state := stateKey(resp)

	options := lo.Map(resp.CountyNames(), func(name string, _ int) countyOption {
		group := resp.Counties[name]
		return countyOption{
			Name:       name,
			PlanCount:  group.PlanCount,
			Percentage: group.Percentage.String(),
			Href:       CountyURL(state, resp.ZipCode, name) + "?include_details=1",
		}
	})

	return execute("county_selection", struct {
		ZipCode  string
		Counties []countyOption
	}{
		ZipCode:  resp.ZipCode,
		Counties: options,
	})
}

// Plans renders the plan cards of one county
func Plans(state, county string, group types.CountyGroup) (string, error) {
	cards := lo.Map(group.Plans, func(p types.PlanEntry, _ int) planCard {
		return planCard{
			PlanEntry: p,
			Href:      PlanURL(state, p.Summary.ContractPlanSegmentID),
		}
	})

	return execute("plans", plansView{
		County:    county,
		PlanCount: group.PlanCount,
		Plans:     cards,
	})
}

// PlanDetail renders every detail section of a single plan
func PlanDetail(resp *types.PlanDetailResponse) (string, error) {
	var sections []detailSection
	if resp.Details != nil {
		d := resp.Details
		sections = lo.Filter([]detailSection{
			section("Plan Information", d.PlanInfo),
			section("Premiums", d.Premiums),
			section("Deductibles", d.Deductibles),
			section("Maximum Out-of-Pocket", d.MaximumOutOfPocket),
			section("Contact Information", d.ContactInfo),
		}, func(s detailSection, _ int) bool {
			return len(s.Rows) > 0
		})
	}

	return execute("plan_detail", struct {
		*types.PlanDetailResponse
		Sections []detailSection
	}{
		PlanDetailResponse: resp,
		Sections:           sections,
	})
}

// Tooltip renders the compact per-county summary shown next to a scanned ZIP
func Tooltip(zipCode string, resp *types.ZipResponse) (string, error) {
	options := lo.Map(resp.CountyNames(), func(name string, _ int) countyOption {
		group := resp.Counties[name]
		return countyOption{
			Name:       name,
			PlanCount:  group.PlanCount,
			Percentage: group.Percentage.String(),
		}
	})

	return execute("tooltip", struct {
		ZipCode  string
		Counties []countyOption
	}{
		ZipCode:  zipCode,
		Counties: options,
	})
}

// Error renders an error-styled fragment. It never fails.
func Error(err error) string {
	out, execErr := execute("error", err.Error())
	if execErr != nil {
		return `<p class="error">Error</p>`
	}
	return out
}

// Message renders a plain status line such as a prompt or "Loading..."
func Message(msg string) string {
	out, err := execute("message", msg)
	if err != nil {
		return ""
	}
	return out
}

// Page wraps a results fragment in the popup document with its lookup form
func Page(states []types.StateInfo, state, zipCode, results string) (string, error) {
	return execute("popup", struct {
		Action  string
		States  []types.StateInfo
		State   string
		ZipCode string
		Results template.HTML
	}{
		Action:  PopupPath + "/lookup",
		States:  states,
		State:   strings.ToLower(state),
		ZipCode: zipCode,
		// Fragments come from this package's templates and are already escaped
		Results: template.HTML(results),
	})
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

func stateKey(resp *types.ZipResponse) string {
	return strings.ToLower(resp.StateAbbr)
}

func section(title string, values map[string]string) detailSection {
	keys := lo.Keys(values)
	sort.Strings(keys)

	return detailSection{
		Title: title,
		Rows: lo.Map(keys, func(k string, _ int) detailRow {
			return detailRow{Key: k, Value: values[k]}
		}),
	}
}

// nl2br escapes s and turns newlines into <br> tags
func nl2br(s string) template.HTML {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = template.HTMLEscapeString(line)
	}
	return template.HTML(strings.Join(lines, "<br>"))
}
