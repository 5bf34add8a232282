package medicare

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"medi-plans/internal/httpx"
	"medi-plans/internal/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// API routes:
//   - GET /states
//   - GET /{state}/{zip}             (?details=0 for summary only)
//   - GET /{state}/plan/{planId}
//   - GET /{state}/counties
//   - GET /health
const (
	routeStates     = "states"
	routePlansByZip = "plans_by_zip"
	routePlanDetail = "plan_detail"
	routeCounties   = "counties"
	routeHealth     = "health"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(baseURL string, logger *slog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.With("component", "medicare-client"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetPlansForZip fetches the plans offered in every county a ZIP code spans.
// With includeDetails false the API returns the smaller summary-only payload.
func (c *Client) GetPlansForZip(ctx context.Context, state, zipCode string, includeDetails bool) (*types.ZipResponse, error) {
	q, u, err := c.plansForZipRequest(state, zipCode, includeDetails)
	if err != nil {
		return nil, err
	}

	var apiResp types.ZipResponse
	if err := c.get(ctx, routePlansByZip, u, &apiResp); err != nil {
		c.logger.Error("error fetching plans",
			"state", q.State,
			"zip_code", q.ZipCode,
			"error", err,
		)
		return nil, err
	}

	c.logger.Debug("fetched plans for zip",
		"state", q.State,
		"zip_code", q.ZipCode,
		"multi_county", apiResp.MultiCounty,
		"counties", len(apiResp.Counties),
	)

	return &apiResp, nil
}

// GetPlansForZipRaw is GetPlansForZip without decoding: the body is returned as the API sent it
func (c *Client) GetPlansForZipRaw(ctx context.Context, state, zipCode string, includeDetails bool) (types.RawJSON, error) {
	q, u, err := c.plansForZipRequest(state, zipCode, includeDetails)
	if err != nil {
		return nil, err
	}

	body, err := c.getRaw(ctx, routePlansByZip, u)
	if err != nil {
		c.logger.Error("error fetching plans",
			"state", q.State,
			"zip_code", q.ZipCode,
			"error", err,
		)
		return nil, err
	}

	return body, nil
}

func (c *Client) plansForZipRequest(state, zipCode string, includeDetails bool) (types.LocationQuery, *url.URL, error) {
	q := types.NewLocationQuery(state, zipCode, includeDetails)
	if q.State == "" {
		return q, nil, ErrInvalidState
	}
	if q.ZipCode == "" {
		return q, nil, ErrInvalidZip
	}

	u, err := c.PlansForZipURL(q)
	if err != nil {
		return q, nil, err
	}

	return q, u, nil
}

// PlansForZipURL builds the plans-by-ZIP request URL for q
func (c *Client) PlansForZipURL(q types.LocationQuery) (*url.URL, error) {
	u, err := c.resolve(q.State, q.ZipCode)
	if err != nil {
		return nil, err
	}

	if !q.IncludeDetails {
		u.RawQuery = "details=0"
	}

	return u, nil
}

// GetPlanDetail fetches one plan by its contract-plan-segment id
func (c *Client) GetPlanDetail(ctx context.Context, state, planID string) (*types.PlanDetailResponse, error) {
	state, planID, u, err := c.planDetailRequest(state, planID)
	if err != nil {
		return nil, err
	}

	var apiResp types.PlanDetailResponse
	if err := c.get(ctx, routePlanDetail, u, &apiResp); err != nil {
		c.logger.Error("error fetching plan details",
			"state", state,
			"plan_id", planID,
			"error", err,
		)
		return nil, err
	}

	return &apiResp, nil
}

// GetPlanDetailRaw is GetPlanDetail without decoding
func (c *Client) GetPlanDetailRaw(ctx context.Context, state, planID string) (types.RawJSON, error) {
	state, planID, u, err := c.planDetailRequest(state, planID)
	if err != nil {
		return nil, err
	}

	body, err := c.getRaw(ctx, routePlanDetail, u)
	if err != nil {
		c.logger.Error("error fetching plan details",
			"state", state,
			"plan_id", planID,
			"error", err,
		)
		return nil, err
	}

	return body, nil
}

func (c *Client) planDetailRequest(state, planID string) (string, string, *url.URL, error) {
	state = strings.ToLower(strings.TrimSpace(state))
	planID = strings.TrimSpace(planID)
	if state == "" {
		return state, planID, nil, ErrInvalidState
	}
	if planID == "" {
		return state, planID, nil, ErrInvalidPlanID
	}

	u, err := c.resolve(state, "plan", planID)
	if err != nil {
		return state, planID, nil, err
	}

	return state, planID, u, nil
}

// ListStates fetches the states the API serves
func (c *Client) ListStates(ctx context.Context) (*types.StatesResponse, error) {
	u, err := c.resolve("states")
	if err != nil {
		return nil, err
	}

	var apiResp types.StatesResponse
	if err := c.get(ctx, routeStates, u, &apiResp); err != nil {
		c.logger.Error("error listing states", "error", err)
		return nil, err
	}

	return &apiResp, nil
}

// ListCounties fetches the counties served for a state
func (c *Client) ListCounties(ctx context.Context, state string) (*types.CountiesResponse, error) {
	state = strings.ToLower(strings.TrimSpace(state))
	if state == "" {
		return nil, ErrInvalidState
	}

	u, err := c.resolve(state, "counties")
	if err != nil {
		return nil, err
	}

	var apiResp types.CountiesResponse
	if err := c.get(ctx, routeCounties, u, &apiResp); err != nil {
		c.logger.Error("error listing counties", "state", state, "error", err)
		return nil, err
	}

	return &apiResp, nil
}

// Health fetches the API's health report
func (c *Client) Health(ctx context.Context) (*types.HealthResponse, error) {
	u, err := c.resolve("health")
	if err != nil {
		return nil, err
	}

	var apiResp types.HealthResponse
	if err := c.get(ctx, routeHealth, u, &apiResp); err != nil {
		return nil, err
	}

	return &apiResp, nil
}

// resolve joins escaped path segments onto the base URL.
// Dot segments are rejected since JoinPath would clean them into another path.
func (c *Client) resolve(segments ...string) (*url.URL, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	escaped := make([]string, len(segments))
	for i, s := range segments {
		if s == "." || s == ".." {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPathSegment, s)
		}
		escaped[i] = url.PathEscape(s)
	}

	return u.JoinPath(escaped...), nil
}

func (c *Client) get(ctx context.Context, route string, u *url.URL, dest any) error {
	body, err := c.getRaw(ctx, route, u)
	if err != nil {
		return err
	}

	// Parse the JSON response
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// getRaw performs the GET and returns the body of a 2xx response once it is known to be JSON
func (c *Client) getRaw(ctx context.Context, route string, u *url.URL) (types.RawJSON, error) {
	ctx = httpx.WithRoute(ctx, route)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	// Make the HTTP request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: route, URL: u.String(), Err: err}
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, URL: u.String()}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: route, URL: u.String(), Err: err}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("failed to decode response: %w", ErrInvalidJSON)
	}

	return body, nil
}
