package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"
)

// Checker reports whether a dependency is reachable.
type Checker func(ctx context.Context) error

// HealthCheck is the health check handler. It answers 200 when every checker
// passes and 503 otherwise.
type HealthCheck struct {
	checks  map[string]Checker
	timeout time.Duration
}

// New creates a HealthCheck running checks with timeout each.
func New(timeout time.Duration, checks map[string]Checker) HealthCheck {
	return HealthCheck{
		checks:  checks,
		timeout: timeout,
	}
}

// Handler is used to control the flow of GET /health endpoint
func (hc HealthCheck) Handler(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if IsHealthCheckRequest(r) {
			hc.ServeHTTP(w, r)

			return
		}

		h.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

// ServeHTTP serve http request for health check
func (hc HealthCheck) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status, failures := hc.Check(r.Context())

	body := map[string]any{"status": "ok"}
	if status != http.StatusOK {
		body = map[string]any{"status": "unavailable", "failures": failures}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Check runs every checker and returns the HTTP status with the failing checks by name.
func (hc HealthCheck) Check(ctx context.Context) (int, map[string]string) {
	names := make([]string, 0, len(hc.checks))
	for name := range hc.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	failures := make(map[string]string)
	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, hc.timeout)
		err := hc.checks[name](checkCtx)
		cancel()
		if err != nil {
			failures[name] = err.Error()
		}
	}

	if len(failures) > 0 {
		return http.StatusServiceUnavailable, failures
	}
	return http.StatusOK, nil
}

// IsHealthCheckRequest is used to check if the request is a health check request
func IsHealthCheckRequest(r *http.Request) bool {
	return r.Method == "GET" && r.URL.Path == "/health"
}
