package httpx

type Option func(*LoggingRoundTripper)

// WithLogFieldMaxLen truncates dumped requests and responses to n bytes
func WithLogFieldMaxLen(n int) Option {
	return func(rt *LoggingRoundTripper) {
		rt.logFieldMaxLen = n
	}
}

// WithBodies includes request and response bodies in the dumps
func WithBodies(enabled bool) Option {
	return func(rt *LoggingRoundTripper) {
		rt.logBodies = enabled
	}
}

// WithMetrics records request counts and latencies
func WithMetrics(m *Metrics) Option {
	return func(rt *LoggingRoundTripper) {
		rt.metrics = m
	}
}
