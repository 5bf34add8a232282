package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"medi-plans/internal/config"
	"medi-plans/internal/relay"
	"medi-plans/internal/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const statesBody = `{"states": [
	{"key": "ak", "name": "Alaska", "abbr": "AK", "zip_codes": 238, "counties": 30},
	{"key": "nh", "name": "New Hampshire", "abbr": "NH", "zip_codes": 282, "counties": 10}
], "total_states": 2}`

const singleCountySummary = `{
	"zip_code": "03301", "state": "New Hampshire", "state_abbr": "NH",
	"multi_county": false, "primary_county": "Merrimack",
	"counties": {"Merrimack": {"fips": "33013", "percentage": null, "plan_count": 1, "scraped_details_available": 1,
		"plans": [{"contract_plan_segment_id": "H1234_001_0", "plan_name": "Gold Plus", "plan_type": "HMO", "organization": "Acme Health", "has_scraped_details": true}]}}
}`

const multiCountySummary = `{
	"zip_code": "03031", "state": "New Hampshire", "state_abbr": "NH",
	"multi_county": true, "primary_county": "Hillsborough",
	"counties": {
		"Hillsborough": {"fips": 33011, "percentage": 92.5, "plan_count": 40, "scraped_details_available": 0, "plans": []},
		"Rockingham": {"fips": 33015, "percentage": 7.5, "plan_count": 38, "scraped_details_available": 0, "plans": []}
	}
}`

const multiCountyFull = `{
	"zip_code": "03031", "state": "New Hampshire", "state_abbr": "NH",
	"multi_county": true, "primary_county": "Hillsborough",
	"counties": {
		"Hillsborough": {"fips": 33011, "percentage": 92.5, "plan_count": 1, "scraped_details_available": 1, "plans": [
			{"summary": {"contract_plan_segment_id": "H5555_002_0", "plan_name": "Granite Choice", "plan_type": "PPO", "organization": "Granite Health", "part_c_premium": "$0.00", "overall_star_rating": "4"},
			 "details": {"premiums": {"Total monthly premium": "$42.50"}, "deductibles": {"Drug deductible": "$250.00"}},
			 "has_scraped_details": true}
		]},
		"Rockingham": {"fips": 33015, "percentage": 7.5, "plan_count": 0, "scraped_details_available": 0, "plans": []}
	}
}`

const planDetailBody = `{
	"plan_id": "H5555_002_0", "state": "NH", "county": "Hillsborough",
	"summary": {"contract_plan_segment_id": "H5555_002_0", "plan_name": "Granite Choice", "plan_type": "PPO", "organization": "Granite Health"},
	"details": {"deductibles": {"Drug deductible": "$250.00"}},
	"has_scraped_details": true
}`

// fakeUpstream serves a fixed set of API paths and records the query of each request
type fakeUpstream struct {
	*httptest.Server
	mu      sync.Mutex
	queries map[string]string
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()

	f := &fakeUpstream{queries: make(map[string]string)}

	routes := map[string]string{
		"/states":              statesBody,
		"/health":              `{"status": "healthy", "states_loaded": 2, "zip_codes_loaded": 520, "counties_loaded": 40}`,
		"/nh/counties":         `{"state": "New Hampshire", "state_abbr": "NH", "county_count": 1, "counties": [{"name": "Merrimack", "plan_count": 44, "scraped_details_available": 40}]}`,
		"/nh/03301":            singleCountySummary,
		"/nh/plan/H5555_002_0": planDetailBody,
	}

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.queries[r.URL.Path] = r.URL.RawQuery
		f.mu.Unlock()

		body, ok := routes[r.URL.Path]
		if r.URL.Path == "/nh/03031" {
			body, ok = multiCountyFull, true
			if r.URL.Query().Get("details") == "0" {
				body = multiCountySummary
			}
		}
		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(f.Close)

	return f
}

func (f *fakeUpstream) query(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[path]
}

func newTestApp(t *testing.T, upstreamURL string) *App {
	t.Helper()

	cfg := &config.Config{
		Server:  config.ServerConfig{Port: 0, GinMode: "test"},
		Log:     config.LogConfig{Level: "error", Format: "text"},
		API:     config.APIConfig{BaseURL: upstreamURL, LogFieldMaxLen: 256},
		Scanner: config.ScannerConfig{DefaultState: "nh"},
	}

	app, err := NewApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return app
}

func doRequest(app *App, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)
	return w
}

func TestNewApp_RequiresBaseURL(t *testing.T) {
	_, err := NewApp(&config.Config{Server: config.ServerConfig{GinMode: "test"}}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}

func TestPing(t *testing.T) {
	rq := require.New(t)
	app := newTestApp(t, newFakeUpstream(t).URL)

	w := doRequest(app, http.MethodGet, "/ping", nil)
	rq.Equal(http.StatusOK, w.Code)

	var resp PingResponse
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	rq.Equal("pong", resp.Message)
}

func TestHealth(t *testing.T) {
	rq := require.New(t)
	app := newTestApp(t, newFakeUpstream(t).URL)

	w := doRequest(app, http.MethodGet, "/health", nil)
	rq.Equal(http.StatusOK, w.Code)

	var resp types.HealthResponse
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	rq.Equal("healthy", resp.Status)
	rq.Equal(2, resp.StatesLoaded)
}

func TestPopup_RendersStateOptions(t *testing.T) {
	rq := require.New(t)
	app := newTestApp(t, newFakeUpstream(t).URL)

	w := doRequest(app, http.MethodGet, "/popup?state=nh", nil)
	rq.Equal(http.StatusOK, w.Code)
	rq.Contains(w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	rq.Contains(body, `<option value="nh" selected>New Hampshire</option>`)
	rq.Contains(body, `<option value="ak">Alaska</option>`)
	rq.Contains(body, `action="/popup/lookup"`)
}

func TestLookup_MissingInput(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "no zip", target: "/popup/lookup?state=nh"},
		{name: "no state", target: "/popup/lookup?zip=03301"},
		{name: "blank zip", target: "/popup/lookup?state=nh&zip=%20%20"},
	}

	upstream := newFakeUpstream(t)
	app := newTestApp(t, upstream.URL)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(app, http.MethodGet, tt.target, nil)
			require.Equal(t, http.StatusOK, w.Code)
			require.Contains(t, w.Body.String(), missingInputMessage)
		})
	}
}

func TestLookup_SingleCounty(t *testing.T) {
	rq := require.New(t)
	upstream := newFakeUpstream(t)
	app := newTestApp(t, upstream.URL)

	w := doRequest(app, http.MethodGet, "/popup/lookup?state=NH&zip=03301", nil)
	rq.Equal(http.StatusOK, w.Code)

	body := w.Body.String()
	rq.Contains(body, "Found 1 plans in Merrimack")
	rq.Contains(body, "Gold Plus")
	rq.Contains(body, `href="/popup/nh/plan/H1234_001_0"`)
	rq.NotContains(body, "plan-details")
	rq.Equal("details=0", upstream.query("/nh/03301"))
}

func TestLookup_MultiCountyThenSelect(t *testing.T) {
	rq := require.New(t)
	upstream := newFakeUpstream(t)
	app := newTestApp(t, upstream.URL)

	w := doRequest(app, http.MethodGet, "/popup/lookup?state=nh&zip=03031", nil)
	rq.Equal(http.StatusOK, w.Code)

	body := w.Body.String()
	rq.Equal(2, strings.Count(body, `class="county-btn"`))
	rq.Contains(body, `href="/popup/nh/03031/county/Hillsborough?include_details=1"`)
	rq.Contains(body, "Rockingham - 38 plans")

	w = doRequest(app, http.MethodGet, "/popup/nh/03031/county/Hillsborough?include_details=1", nil)
	rq.Equal(http.StatusOK, w.Code)

	body = w.Body.String()
	rq.Empty(upstream.query("/nh/03031"), "county selection must request full details")
	rq.Contains(body, "Granite Choice")
	rq.Contains(body, "$42.50")
	rq.Contains(body, "$250.00")
	rq.Contains(body, "4 stars")
}

func TestSelectCounty_Unknown(t *testing.T) {
	rq := require.New(t)
	app := newTestApp(t, newFakeUpstream(t).URL)

	w := doRequest(app, http.MethodGet, "/popup/nh/03031/county/Strafford", nil)
	rq.Equal(http.StatusOK, w.Code)
	rq.Contains(w.Body.String(), `class="error"`)
	rq.Contains(w.Body.String(), "Strafford")
}

func TestLookup_UpstreamNotFound(t *testing.T) {
	rq := require.New(t)
	app := newTestApp(t, newFakeUpstream(t).URL)

	w := doRequest(app, http.MethodGet, "/popup/lookup?state=nh&zip=99999", nil)
	rq.Equal(http.StatusOK, w.Code)
	rq.Contains(w.Body.String(), "API Error: 404 Not Found")
}

func TestPlanDetail(t *testing.T) {
	rq := require.New(t)
	app := newTestApp(t, newFakeUpstream(t).URL)

	w := doRequest(app, http.MethodGet, "/popup/nh/plan/H5555_002_0", nil)
	rq.Equal(http.StatusOK, w.Code)

	body := w.Body.String()
	rq.Contains(body, "Granite Choice")
	rq.Contains(body, "Deductibles")
	rq.Contains(body, "County:</strong> Hillsborough, NH")
}

func TestListings(t *testing.T) {
	rq := require.New(t)
	app := newTestApp(t, newFakeUpstream(t).URL)

	w := doRequest(app, http.MethodGet, "/states", nil)
	rq.Equal(http.StatusOK, w.Code)

	var states []types.StateInfo
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &states))
	rq.Len(states, 2)
	rq.Equal("ak", states[0].Key)

	w = doRequest(app, http.MethodGet, "/states/nh/counties", nil)
	rq.Equal(http.StatusOK, w.Code)

	var counties []types.CountyInfo
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &counties))
	rq.Len(counties, 1)
	rq.Equal(44, counties[0].PlanCount)

	w = doRequest(app, http.MethodGet, "/states/vt/counties", nil)
	rq.Equal(http.StatusNotFound, w.Code)
}

// startRelay runs the relay loop that Run would start, until the test ends
func startRelay(t *testing.T, app *App) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.relay.Serve(ctx, app.relayInbox) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("relay did not stop")
		}
	})
}

func TestRelay(t *testing.T) {
	app := newTestApp(t, newFakeUpstream(t).URL)
	startRelay(t, app)

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantSuccess bool
		wantError   string
	}{
		{
			name:        "get plans",
			body:        `{"id": "m1", "action": "getPlans", "state": "nh", "zipCode": "03301"}`,
			wantStatus:  http.StatusOK,
			wantSuccess: true,
		},
		{
			name:        "get plan detail",
			body:        `{"action": "getPlanDetail", "state": "nh", "planId": "H5555_002_0"}`,
			wantStatus:  http.StatusOK,
			wantSuccess: true,
		},
		{
			name:       "upstream 404",
			body:       `{"action": "getPlans", "state": "nh", "zipCode": "99999"}`,
			wantStatus: http.StatusOK,
			wantError:  "API Error: 404 Not Found",
		},
		{
			name:       "missing zip",
			body:       `{"action": "getPlans", "state": "nh"}`,
			wantStatus: http.StatusOK,
			wantError:  "invalid request",
		},
		{
			name:       "unknown action",
			body:       `{"action": "getWeather", "state": "nh"}`,
			wantStatus: http.StatusOK,
			wantError:  "no handler for action",
		},
		{
			name:       "malformed json",
			body:       `{"action":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			w := doRequest(app, http.MethodPost, "/relay", strings.NewReader(tt.body))
			rq.Equal(tt.wantStatus, w.Code)

			var resp relay.Response
			rq.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
			rq.Equal(tt.wantSuccess, resp.Success)
			if tt.wantError != "" {
				rq.Contains(resp.Error, tt.wantError)
			} else {
				rq.Empty(resp.Error)
				rq.NotNil(resp.Data)
			}
		})
	}
}

func TestScan(t *testing.T) {
	rq := require.New(t)
	app := newTestApp(t, newFakeUpstream(t).URL)

	page := `<html><body><p>Visit us at 1 Main St, Concord NH 03301</p><p>Nothing here</p></body></html>`

	w := doRequest(app, http.MethodPost, "/scan", strings.NewReader(page))
	rq.Equal(http.StatusOK, w.Code)
	rq.Equal("1", w.Header().Get("X-Zip-Matches"))
	rq.Contains(w.Body.String(), `data-medicare-zip="03301"`)
	rq.Contains(w.Body.String(), "cursor: pointer")
}

func TestScanClick(t *testing.T) {
	tests := []struct {
		name       string
		zip        string
		wantStatus int
		wantHTML   string
	}{
		{name: "known zip", zip: "03301", wantStatus: http.StatusOK, wantHTML: "Merrimack"},
		{name: "zip plus four", zip: "03301-1234", wantStatus: http.StatusOK, wantHTML: "03301-1234"},
		{name: "not a zip", zip: "abc", wantStatus: http.StatusBadRequest},
		{name: "unknown zip", zip: "99999", wantStatus: http.StatusNotFound},
	}

	app := newTestApp(t, newFakeUpstream(t).URL)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			w := doRequest(app, http.MethodGet, "/scan/click/"+tt.zip, nil)
			rq.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp TooltipResponse
			rq.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
			rq.Equal(tt.zip, resp.ZipCode)
			rq.Contains(resp.HTML, tt.wantHTML)
		})
	}
}

func TestMetrics_CountsUpstreamRequests(t *testing.T) {
	rq := require.New(t)
	app := newTestApp(t, newFakeUpstream(t).URL)

	doRequest(app, http.MethodGet, "/states", nil)

	w := doRequest(app, http.MethodGet, "/metrics", nil)
	rq.Equal(http.StatusOK, w.Code)
	rq.Contains(w.Body.String(), `medi_plans_upstream_requests_total{code="200",route="states"} 1`)
}

func TestRun_StopsOnCancel(t *testing.T) {
	app := newTestApp(t, newFakeUpstream(t).URL)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRelay_RepliesWithUpstreamJSON(t *testing.T) {
	rq := require.New(t)
	app := newTestApp(t, newFakeUpstream(t).URL)
	startRelay(t, app)

	w := doRequest(app, http.MethodPost, "/relay", strings.NewReader(`{"action": "getPlans", "state": "nh", "zipCode": "03031"}`))
	rq.Equal(http.StatusOK, w.Code)

	var multi struct {
		Success bool `json:"success"`
		Data    struct {
			Counties map[string]struct {
				FIPS       any `json:"fips"`
				Percentage any `json:"percentage"`
			} `json:"counties"`
		} `json:"data"`
	}
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &multi))
	rq.True(multi.Success)
	rq.Equal(float64(33011), multi.Data.Counties["Hillsborough"].FIPS)
	rq.Equal(92.5, multi.Data.Counties["Hillsborough"].Percentage)

	w = doRequest(app, http.MethodPost, "/relay", strings.NewReader(`{"action": "getPlans", "state": "nh", "zipCode": "03301"}`))
	rq.Equal(http.StatusOK, w.Code)

	var single struct {
		Data struct {
			Counties map[string]struct {
				Percentage any              `json:"percentage"`
				Plans      []map[string]any `json:"plans"`
			} `json:"counties"`
		} `json:"data"`
	}
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &single))

	merrimack, ok := single.Data.Counties["Merrimack"]
	rq.True(ok)
	rq.Nil(merrimack.Percentage)
	rq.Contains(w.Body.String(), `"percentage":null`)
	rq.Len(merrimack.Plans, 1)
	rq.Equal("Gold Plus", merrimack.Plans[0]["plan_name"])
	rq.NotContains(merrimack.Plans[0], "summary")
}

func TestRelay_ClientGoneBeforeReply(t *testing.T) {
	rq := require.New(t)

	release := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(upstream.Close)
	t.Cleanup(func() { close(release) })

	app := newTestApp(t, upstream.URL)
	startRelay(t, app)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodPost, "/relay", strings.NewReader(`{"action": "getPlans", "state": "nh", "zipCode": "03301"}`)).WithContext(ctx)
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)

	var resp relay.Response
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	rq.False(resp.Success)

	// The in-flight upstream call ends with the request context
	waited := make(chan struct{})
	go func() {
		app.relay.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-time.After(2 * time.Second):
		t.Fatal("relay handler kept running after the caller left")
	}
}

func TestSelectCounty_IncludeDetailsQuery(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantQuery string
	}{
		{name: "details requested", target: "/popup/nh/03031/county/Hillsborough?include_details=1", wantQuery: ""},
		{name: "summary only", target: "/popup/nh/03031/county/Hillsborough", wantQuery: "details=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := newFakeUpstream(t)
			app := newTestApp(t, upstream.URL)

			w := doRequest(app, http.MethodGet, tt.target, nil)
			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tt.wantQuery, upstream.query("/nh/03031"))
		})
	}
}

func TestCounties_RejectsDotSegment(t *testing.T) {
	app := newTestApp(t, newFakeUpstream(t).URL)

	w := doRequest(app, http.MethodGet, "/states/%2E%2E/counties", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
