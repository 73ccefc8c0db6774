package dto

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse always ships with HTTP 200; Status degrades when the DB
// probe fails.
type HealthResponse struct {
	Status    string  `json:"status"`
	DB        string  `json:"db"`
	ElapsedMS float64 `json:"elapsed_ms"`
	App       string  `json:"app"`
}
