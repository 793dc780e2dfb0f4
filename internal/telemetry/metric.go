package telemetry

import (
	"strconv"

	"zai-console/config"
	"zai-console/internal/core"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ProviderSet = wire.NewSet(NewTrace, NewMetric)

// Metric struct；未啟用時所有欄位皆為 nil，呼叫端需自行判斷
type Metric struct {
	HttpRequestsTotal       *prometheus.CounterVec
	HttpRequestDuration     *prometheus.HistogramVec
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec
	UpstreamUp              prometheus.Gauge
	config                  *config.Configuration
}

// NewMetric 建立所有指標
func NewMetric(config *config.Configuration) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	prefix := metricPrefix(config.App.Name)
	return &Metric{
		config: config,
		HttpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricHttpRequestsTotal),
				Help: "Total received API requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + string(core.MetricHttpRequestDuration),
				Help:    "API request duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		UpstreamRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricUpstreamRequestsTotal),
				Help: "Worker API calls by route and status (status=error on transport failure)",
			},
			labelNames(core.MetricLabelRoute, core.MetricLabelStatus),
		),
		UpstreamRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + string(core.MetricUpstreamRequestDuration),
				Help:    "Worker API call duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelRoute),
		),
		UpstreamUp: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + string(core.MetricUpstreamUp),
				Help: "1 if the last Worker API probe got an HTTP response",
			},
		),
	}
}

// ObserveHttp 記錄一次進站請求
func (m *Metric) ObserveHttp(endpoint string, status int, seconds float64) {
	if m == nil || m.HttpRequestsTotal == nil || m.HttpRequestDuration == nil {
		return
	}
	m.HttpRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.HttpRequestDuration.WithLabelValues(endpoint).Observe(seconds)
}

// ObserveUpstream 記錄一次 Worker API 呼叫
func (m *Metric) ObserveUpstream(route core.WorkerRoute, status string, seconds float64) {
	if m == nil || m.UpstreamRequestsTotal == nil || m.UpstreamRequestDuration == nil {
		return
	}
	m.UpstreamRequestsTotal.WithLabelValues(string(route), status).Inc()
	m.UpstreamRequestDuration.WithLabelValues(string(route)).Observe(seconds)
}

func (m *Metric) SetUpstreamUp(up bool) {
	if m == nil || m.UpstreamUp == nil {
		return
	}
	if up {
		m.UpstreamUp.Set(1)
		return
	}
	m.UpstreamUp.Set(0)
}

// prometheus metric 名稱不允許 '-'
func metricPrefix(name string) string {
	if name == "" {
		return ""
	}
	b := []byte(name)
	for i, ch := range b {
		if !(ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' || ch == '_') {
			b[i] = '_'
		}
	}
	return string(b) + "_"
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
