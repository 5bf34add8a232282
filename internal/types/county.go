package types

import (
	"sort"

	"github.com/samber/lo"
)

// CountyGroup is the per-county bucket of plans within a ZipResponse
type CountyGroup struct {
	FIPS                    LooseString `json:"fips"`
	Percentage              LooseString `json:"percentage,omitempty"`
	PlanCount               int         `json:"plan_count"`
	ScrapedDetailsAvailable int         `json:"scraped_details_available"`
	Plans                   []PlanEntry `json:"plans"`
}

// ZipResponse is the top-level payload for a plans-by-ZIP query
type ZipResponse struct {
	ZipCode       string                 `json:"zip_code"`
	State         string                 `json:"state"`
	StateAbbr     string                 `json:"state_abbr"`
	MultiCounty   bool                   `json:"multi_county"`
	PrimaryCounty string                 `json:"primary_county"`
	Counties      map[string]CountyGroup `json:"counties"`
}

// CountyNames returns the county keys in sorted order
func (r *ZipResponse) CountyNames() []string {
	names := lo.Keys(r.Counties)
	sort.Strings(names)
	return names
}

// SingleCounty returns the only county of a single-county response.
// When the map holds several keys the primary county wins, then the first by name.
func (r *ZipResponse) SingleCounty() (string, CountyGroup, bool) {
	if len(r.Counties) == 0 {
		return "", CountyGroup{}, false
	}
	if group, ok := r.Counties[r.PrimaryCounty]; ok {
		return r.PrimaryCounty, group, true
	}
	name := r.CountyNames()[0]
	return name, r.Counties[name], true
}
