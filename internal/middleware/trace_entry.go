package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"zai-console/config"
	"zai-console/internal/core"
	"zai-console/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const requestStartKey = "requestDuration"

// TraceEntry 每個請求的根 span 與 HTTP 指標
type TraceEntry struct {
	trace  *telemetry.Trace
	metric *telemetry.Metric
	conf   *config.Configuration
}

func NewTraceEntry(trace *telemetry.Trace, metric *telemetry.Metric, conf *config.Configuration) *TraceEntry {
	return &TraceEntry{trace: trace, metric: metric, conf: conf}
}

func (m *TraceEntry) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isAmbientPath(c.FullPath()) {
			c.Next()
			return
		}

		route := routeOf(c)
		parent := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := m.trace.StartSpanForLayer(parent,
			core.TraceSpanName(c.Request.Method+" "+route),
			trace.WithSpanKind(trace.SpanKindServer),
		)
		c.Request = c.Request.WithContext(ctx)
		c.Set(core.ContextTraceKey, ctx)

		start := time.Now().UTC()
		if _, exists := c.Get(requestStartKey); !exists {
			c.Set(requestStartKey, start)
		}
		meta := m.serverMeta(c, route, span.SpanContext().TraceID().String())

		c.Next()

		status := c.Writer.Status()
		meta.HttpStatusCode = status
		m.trace.ApplyTraceAttributes(span, &meta)
		m.metric.ObserveHttp(route, status, time.Since(start).Seconds())

		var spanErr error
		if status >= http.StatusInternalServerError && len(c.Errors) > 0 {
			spanErr = c.Errors.Last().Err
		}
		m.trace.EndSpan(span, spanErr)
	}
}

func (m *TraceEntry) serverMeta(c *gin.Context, route, traceID string) core.TraceHttpServerMeta {
	peerAddr, peerPort := peerOf(c)
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return core.TraceHttpServerMeta{
		ClientAddr:        c.ClientIP(),
		HttpRequestMethod: c.Request.Method,
		HttpRoute:         route,
		UrlPath:           c.Request.URL.Path,
		UrlScheme:         scheme,
		UserAgent:         c.Request.UserAgent(),
		ServerAddress:     m.conf.App.Name,
		NetworkPeerAddr:   peerAddr,
		NetworkPeerPort:   peerPort,
		NetworkProtoVer:   c.Request.Proto,
		SpanTraceID:       traceID,
	}
}

// routeOf 未匹配路由時退回實際路徑
func routeOf(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return c.Request.URL.Path
}

func peerOf(c *gin.Context) (string, int) {
	host, port, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.ClientIP(), 0
	}
	p, _ := strconv.Atoi(port)
	return host, p
}
