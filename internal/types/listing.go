package types

import "github.com/samber/lo"

// StateInfo describes one state served by the API
type StateInfo struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Abbr     string `json:"abbr"`
	ZipCodes int    `json:"zip_codes"`
	Counties int    `json:"counties"`
}

// StatesResponse is returned by the states endpoint
type StatesResponse struct {
	States      []StateInfo `json:"states"`
	TotalStates int         `json:"total_states"`
}

// StateKeys returns the lower-case state codes in server order
func (r *StatesResponse) StateKeys() []string {
	return lo.Map(r.States, func(s StateInfo, _ int) string {
		return s.Key
	})
}

// CountyInfo describes one county served for a state
type CountyInfo struct {
	Name                    string `json:"name"`
	PlanCount               int    `json:"plan_count"`
	ScrapedDetailsAvailable int    `json:"scraped_details_available"`
}

// CountiesResponse is returned by the counties endpoint
type CountiesResponse struct {
	State       string       `json:"state"`
	StateAbbr   string       `json:"state_abbr"`
	CountyCount int          `json:"county_count"`
	Counties    []CountyInfo `json:"counties"`
}

// Names returns the county names in server order
func (r *CountiesResponse) Names() []string {
	return lo.Map(r.Counties, func(c CountyInfo, _ int) string {
		return c.Name
	})
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status         string `json:"status"`
	StatesLoaded   int    `json:"states_loaded"`
	ZipCodesLoaded int    `json:"zip_codes_loaded"`
	CountiesLoaded int    `json:"counties_loaded"`
}
