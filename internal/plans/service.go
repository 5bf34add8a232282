package plans

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"medi-plans/internal/types"
)

// ErrCountyNotFound is returned when a selected county is not part of the ZIP's response
var ErrCountyNotFound = errors.New("county not found for zip code")

// PlanProvider is the upstream plan lookup API
type PlanProvider interface {
	GetPlansForZip(ctx context.Context, state, zipCode string, includeDetails bool) (*types.ZipResponse, error)
	GetPlanDetail(ctx context.Context, state, planID string) (*types.PlanDetailResponse, error)
	ListStates(ctx context.Context) (*types.StatesResponse, error)
	ListCounties(ctx context.Context, state string) (*types.CountiesResponse, error)
}

// LookupResult is the outcome of a ZIP lookup. Multi-county ZIPs need a county
// selection before plans are shown; otherwise County and Group are set.
type LookupResult struct {
	Response             *types.ZipResponse
	NeedsCountySelection bool
	County               string
	Group                types.CountyGroup
}

// Service drives the plan finder flow: summary first, full details once a county is known.
type Service interface {
	Lookup(ctx context.Context, state, zipCode string) (*LookupResult, error)
	SelectCounty(ctx context.Context, state, zipCode, county string, includeDetails bool) (*types.CountyGroup, error)
	PlanDetail(ctx context.Context, state, planID string) (*types.PlanDetailResponse, error)
	States(ctx context.Context) ([]types.StateInfo, error)
	Counties(ctx context.Context, state string) ([]types.CountyInfo, error)
}

type plansService struct {
	provider PlanProvider
	logger   *slog.Logger
}

// NewPlansService creates a plans service backed by the given provider.
// Tests pass a mock provider; production passes a *medicare.Client.
func NewPlansService(provider PlanProvider, logger *slog.Logger) Service {
	return &plansService{
		provider: provider,
		logger:   logger.With("component", "plans-service"),
	}
}

// Lookup fetches the summary-only payload for a ZIP and decides whether the
// caller must pick a county.
func (s *plansService) Lookup(ctx context.Context, state, zipCode string) (*LookupResult, error) {
	resp, err := s.provider.GetPlansForZip(ctx, state, zipCode, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get plans: %w", err)
	}

	result := &LookupResult{Response: resp}

	if resp.MultiCounty {
		result.NeedsCountySelection = true
		s.logger.Debug("zip spans multiple counties",
			"zip_code", zipCode,
			"counties", resp.CountyNames(),
		)
		return result, nil
	}

	name, group, ok := resp.SingleCounty()
	if !ok {
		s.logger.Warn("no counties returned for zip", "state", state, "zip_code", zipCode)
		return result, nil
	}

	result.County = name
	result.Group = group

	return result, nil
}

// SelectCounty reloads the ZIP and returns the chosen county's plans.
// County links from the selection list ask for full details.
func (s *plansService) SelectCounty(ctx context.Context, state, zipCode, county string, includeDetails bool) (*types.CountyGroup, error) {
	resp, err := s.provider.GetPlansForZip(ctx, state, zipCode, includeDetails)
	if err != nil {
		return nil, fmt.Errorf("failed to get plans for county: %w", err)
	}

	group, ok := resp.Counties[county]
	if !ok {
		// County keys are display names; tolerate case differences from form input
		for name, g := range resp.Counties {
			if strings.EqualFold(name, county) {
				group, ok = g, true
				break
			}
		}
	}
	if !ok {
		s.logger.Warn("selected county not in response",
			"zip_code", zipCode,
			"county", county,
		)
		return nil, fmt.Errorf("%w: %s", ErrCountyNotFound, county)
	}

	return &group, nil
}

func (s *plansService) PlanDetail(ctx context.Context, state, planID string) (*types.PlanDetailResponse, error) {
	resp, err := s.provider.GetPlanDetail(ctx, state, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan detail: %w", err)
	}
	return resp, nil
}

func (s *plansService) States(ctx context.Context) ([]types.StateInfo, error) {
	resp, err := s.provider.ListStates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}
	return resp.States, nil
}

func (s *plansService) Counties(ctx context.Context, state string) ([]types.CountyInfo, error) {
	resp, err := s.provider.ListCounties(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to list counties: %w", err)
	}
	return resp.Counties, nil
}
