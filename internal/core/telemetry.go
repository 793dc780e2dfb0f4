package core

const ContextTraceKey = "telemetry_trace_ctx"

// ==== 型別安全 span name ====
// 專案全域建議都寫這裡，方便集中管理
type TraceSpanName string

const (
	SpanLoggerMiddleware   TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware     TraceSpanName = "cors_middleware"
	SpanResponseMiddleware TraceSpanName = "response_middleware"
	SpanBearerMiddleware   TraceSpanName = "bearer_middleware"
	SpanWorkerCall         TraceSpanName = "worker.call"
	SpanDashboardLoad      TraceSpanName = "dashboard.load"
	SpanPassthrough        TraceSpanName = "worker.passthrough"
	SpanUpstreamProbe      TraceSpanName = "worker.probe"
)

// 指標名稱常數
type MetricName string

const (
	MetricHttpRequestsTotal       MetricName = "requests_total"
	MetricHttpRequestDuration     MetricName = "request_duration_seconds"
	MetricUpstreamRequestsTotal   MetricName = "upstream_requests_total"
	MetricUpstreamRequestDuration MetricName = "upstream_request_duration_seconds"
	MetricUpstreamUp              MetricName = "upstream_up"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelRoute    MetricLabelName = "route"
)

type LoggerRequestMeta struct {
	Method     string            `trace:"request.method"`
	Path       string            `trace:"request.path"`
	FullPath   string            `trace:"request.full_path"`
	Query      string            `trace:"request.query"`
	Body       string            `trace:"request.body"`
	Scheme     string            `trace:"http.scheme"`
	Host       string            `trace:"http.host"`
	UserAgent  string            `trace:"http.user_agent"`
	ContentLen int64             `trace:"http.request_content_length"`
	Proto      string            `trace:"http.flavor"`
	ClientIP   string            `trace:"net.peer.ip"`
	Headers    map[string]string `trace:"http.request.header"`
	Params     map[string]string `trace:"http.request.param"`
}

type TraceBearerMiddlewareMeta struct {
	ClientIP  string `trace:"net.peer.ip,omitempty"`
	HasHeader bool   `trace:"auth.has_header"`
	KeyMasked string `trace:"auth.key_masked,omitempty"`
	Status    string `trace:"auth.status,omitempty"`
}

type TraceUpstreamMeta struct {
	Route      string  `trace:"worker.route"`
	Method     string  `trace:"http.method"`
	URL        string  `trace:"http.url"`
	StatusCode int     `trace:"http.status_code"`
	BodyBytes  int     `trace:"http.response_content_length"`
	Encoding   string  `trace:"http.response.content_encoding,omitempty"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceDashboardMeta struct {
	KeyMasked       string `trace:"auth.key_masked"`
	UsersStatus     int    `trace:"worker.users.status"`
	UserCount       int    `trace:"dashboard.users"`
	AccountCount    int    `trace:"dashboard.accounts"`
	ExpiringSoon    int    `trace:"dashboard.expiring_soon"`
	LogCount        int    `trace:"dashboard.recent_logs"`
	UpstreamLogSize int    `trace:"worker.logs.size"`
	Status          string `trace:"dashboard.status"`
}

type TracePassthroughMeta struct {
	Route          string `trace:"worker.route"`
	Method         string `trace:"http.method"`
	TargetID       string `trace:"worker.target_id,omitempty"`
	UpstreamStatus int    `trace:"worker.status_code"`
	Success        string `trace:"worker.success,omitempty"`
	Message        string `trace:"worker.message,omitempty"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.latency_ms"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"error.message"`
	Stack      string  `trace:"error.stack"`
}

type TraceErrorMeta struct {
	Code       int     `trace:"error.code"`
	Message    string  `trace:"error.message"`
	Detail     string  `trace:"error.detail"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"response.message"`
	DurationMs float64 `trace:"response.latency_ms"`
	Data       string  `trace:"response.data_preview"`
}

type TraceHttpServerMeta struct {
	// request side
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanTraceID       string `trace:"span.trace_id"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
}

type TraceProbeMeta struct {
	URL        string `trace:"http.url"`
	StatusCode int    `trace:"http.status_code,omitempty"`
	Reachable  bool   `trace:"worker.reachable"`
}
