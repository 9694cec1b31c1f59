package response

// HealthCheckResult is the outcome of a single probe.
type HealthCheckResult struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

// HealthResponse aggregates every probe; Status is "healthy" only when
// all probes pass.
type HealthResponse struct {
	Status string              `json:"status"`
	Checks []HealthCheckResult `json:"checks"`
}
