package dto

// ErrorResponse cuerpo de error HTTP: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse respuesta de GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Records int64  `json:"records"`
}
