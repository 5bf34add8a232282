package httpx

import "context"

type routeKey struct{}

// WithRoute tags outbound requests made with ctx with a low-cardinality route name
func WithRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeKey{}, route)
}

// RouteFromContext returns the route set by WithRoute, or "unknown"
func RouteFromContext(ctx context.Context) string {
	if route, ok := ctx.Value(routeKey{}).(string); ok && route != "" {
		return route
	}
	return "unknown"
}
