package core

// ─── Fluentd ───────────────────────────────────────────────────────────────────

type FluentdSubTag string

const (
	FluentdRequest  FluentdSubTag = "request_log"
	FluentdResponse FluentdSubTag = "response_log"
	FluentdUpstream FluentdSubTag = "upstream_log"
)
