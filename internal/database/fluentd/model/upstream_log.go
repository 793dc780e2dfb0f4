package model

// UpstreamLog 對 Worker API 的單次呼叫；不含 body 與金鑰
type UpstreamLog struct {
	Route      string  `json:"route"`
	Method     string  `json:"method"`
	StatusCode int     `json:"status_code"`
	Error      string  `json:"error,omitempty"`
	BodyBytes  int     `json:"body_bytes"`
	LatencyMs  float64 `json:"latency_ms"`
	Version    string  `json:"version,omitempty"`
	LoggedAt   string  `json:"logged_at"`
}
