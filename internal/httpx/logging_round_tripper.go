package httpx

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/rs/xid"
)

// LoggingRoundTripper implements http.RoundTripper and logs every outbound
// request and response.
type LoggingRoundTripper struct {
	next           http.RoundTripper
	logger         *slog.Logger
	metrics        *Metrics
	logBodies      bool
	logFieldMaxLen int
}

// NewLoggingRoundTripper returns a new logging RoundTripper instance.
func NewLoggingRoundTripper(next http.RoundTripper, logger *slog.Logger, opts ...Option) LoggingRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	rt := LoggingRoundTripper{
		next:   next,
		logger: logger.With("component", "http-client"),
	}

	for _, opt := range opts {
		opt(&rt)
	}

	return rt
}

// RoundTrip implements http.RoundTripper. Transport errors are returned unchanged.
func (rt LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	requestID := xid.New().String()
	route := RouteFromContext(ctx)

	reqBytes, err := httputil.DumpRequestOut(req, rt.logBodies)
	if err != nil {
		rt.logger.ErrorContext(ctx, "failed to dump request", "request_id", requestID, "error", err)
	}

	rt.logger.DebugContext(ctx, "http request",
		"request_id", requestID,
		"route", route,
		"method", req.Method,
		"url", req.URL.String(),
		"dump", rt.truncate(reqBytes),
	)

	start := time.Now()

	resp, err := rt.next.RoundTrip(req)
	elapsed := time.Since(start)
	if err != nil {
		rt.metrics.observe(route, 0, elapsed)
		rt.logger.ErrorContext(ctx, "http request failed",
			"request_id", requestID,
			"route", route,
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
		return nil, err
	}

	rt.metrics.observe(route, resp.StatusCode, elapsed)

	respBytes, err := httputil.DumpResponse(resp, rt.logBodies)
	if err != nil {
		rt.logger.ErrorContext(ctx, "failed to dump response", "request_id", requestID, "error", err)
	}

	rt.logger.DebugContext(ctx, "http response",
		"request_id", requestID,
		"route", route,
		"status_code", resp.StatusCode,
		"duration_ms", elapsed.Milliseconds(),
		"dump", rt.truncate(respBytes),
	)

	return resp, nil
}

func (rt LoggingRoundTripper) truncate(b []byte) string {
	if rt.logFieldMaxLen > 0 && len(b) > rt.logFieldMaxLen {
		b = b[:rt.logFieldMaxLen]
	}
	return string(b)
}
