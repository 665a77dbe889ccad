package api

// ErrorResponse is the uniform HTTP error body. Details is only set for
// validation failures.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}

// HealthResponse is the HTTP response for the health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// APIInfoResponse is the metadata body served at the API root.
type APIInfoResponse struct {
	Name    string            `json:"name"`
	Version string            `json:"version"`
	Docs    map[string]string `json:"docs"`
}
