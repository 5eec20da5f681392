package dto

// AnalyzeScenarioRequest is the inbound payload for scenario analysis.
// TopK optionally overrides the deployment's retrieval depth.
type AnalyzeScenarioRequest struct {
	Scenario string `json:"scenario"`
	TopK     int    `json:"top_k,omitempty"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
