package telemetry

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"zai-console/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestParseTraceTag(t *testing.T) {
	key, omit := parseTraceTag("worker.route")
	assert.Equal(t, "worker.route", key)
	assert.False(t, omit)

	key, omit = parseTraceTag("auth.key_masked,omitempty")
	assert.Equal(t, "auth.key_masked", key)
	assert.True(t, omit)

	key, _ = parseTraceTag("-")
	assert.Empty(t, key)
}

func TestPrettifyFuncName(t *testing.T) {
	got := prettifyFuncName("zai-console/internal/handler.(*AdminHandler).Auth-fm")
	assert.Equal(t, "AdminHandler.Auth", got)
}

func TestDisabledTraceIsNoop(t *testing.T) {
	tr, cleanup, err := NewTrace(&config.Configuration{})
	require.NoError(t, err)
	defer cleanup()

	ctx, span, end := tr.WithSpan(context.Background(), "x")
	assert.NotNil(t, ctx)
	assert.False(t, span.IsRecording())
	end(nil)

	// 未啟用時不包 otelhttp
	assert.Equal(t, http.DefaultTransport, tr.WrapTransport(nil))
}

func TestDisabledMetricIsSafe(t *testing.T) {
	m := NewMetric(&config.Configuration{})
	m.ObserveUpstream("/admin/stats", "200", 0.1)
	m.SetUpstreamUp(true)
	assert.Nil(t, m.UpstreamRequestsTotal)
	assert.Equal(t, "zai_console_", metricPrefix("zai-console"))
}

type nestedMeta struct {
	Route string `trace:"worker.route"`
}

type sampleMeta struct {
	Status  int               `trace:"worker.status"`
	Key     string            `trace:"auth.key_masked,omitempty"`
	Nested  *nestedMeta       `trace:"nested"`
	Labels  map[string]string `trace:"label"`
	Tags    []string          `trace:"tags"`
	Ignored string
}

func TestCollectAttributes(t *testing.T) {
	attrs := collectAttributes(reflect.ValueOf(&sampleMeta{
		Status: 200,
		Nested: &nestedMeta{Route: "/admin/stats"},
		Labels: map[string]string{"env": "test"},
		Tags:   []string{"a", "b"},
	}), nil)

	got := map[string]attribute.Value{}
	for _, kv := range attrs {
		got[string(kv.Key)] = kv.Value
	}
	assert.Equal(t, int64(200), got["worker.status"].AsInt64())
	assert.Equal(t, "/admin/stats", got["worker.route"].AsString())
	assert.Equal(t, "test", got["label.env"].AsString())
	assert.Equal(t, []string{"a", "b"}, got["tags"].AsStringSlice())
	assert.NotContains(t, got, "auth.key_masked")
	assert.Len(t, got, 4)
}

func TestSpanNameFallback(t *testing.T) {
	assert.Equal(t, "custom", string(spanName("custom", "Handler.Auth")))
	assert.Equal(t, "Handler.Auth", string(spanName("", "Handler.Auth")))
	assert.Equal(t, unknownSpanName, string(spanName("", "")))
}

func TestEnabledTraceBuildsExporter(t *testing.T) {
	conf := &config.Configuration{}
	conf.App.Name = "zai-console"
	conf.Telemetry.Trace.Enabled = true
	conf.Telemetry.Trace.EndpointUrl = "http://127.0.0.1:4318/v1/traces"
	conf.Telemetry.Trace.SampleRatio = 0.5

	exporter, err := newExporter(conf.Telemetry.Trace)
	require.NoError(t, err)
	require.NotNil(t, exporter)
	require.NoError(t, exporter.Shutdown(context.Background()))

	tr, cleanup, err := NewTrace(conf)
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, tr.TracerProvider)
	assert.Equal(t, "zai-console", tr.ServiceName)
}
