package types

import "strings"

// LocationQuery identifies a plans-by-ZIP lookup
type LocationQuery struct {
	State          string
	ZipCode        string
	IncludeDetails bool
}

func NewLocationQuery(state, zipCode string, includeDetails bool) LocationQuery {
	return LocationQuery{
		State:          strings.ToLower(strings.TrimSpace(state)),
		ZipCode:        strings.TrimSpace(zipCode),
		IncludeDetails: includeDetails,
	}
}
