package telemetry

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"zai-console/config"
	"zai-console/internal/core"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	exporterTimeout  = 30 * time.Second
	shutdownTimeout  = 5 * time.Second
	unknownSpanName  = "unknown"
	noopTracerName   = "noop"
	callerSkipFrames = 2
)

// Trace 包住 TracerProvider；未啟用時 TracerProvider 為 nil，所有 span 都是 noop
type Trace struct {
	TracerProvider *sdktrace.TracerProvider
	ServiceName    string
}

func NewTrace(conf *config.Configuration) (*Trace, func(), error) {
	if conf == nil || !conf.Telemetry.Trace.Enabled {
		return &Trace{}, func() {}, nil
	}

	exporter, err := newExporter(conf.Telemetry.Trace)
	if err != nil {
		return nil, nil, fmt.Errorf("create otlp exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(newSampler(conf.Telemetry.Trace)),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(conf.App.Name),
			semconv.ServiceVersion(conf.App.Version),
			semconv.DeploymentEnvironmentName(conf.App.Env),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}
	return &Trace{TracerProvider: tp, ServiceName: conf.App.Name}, cleanup, nil
}

func newExporter(conf config.TraceConfig) (*otlptrace.Exporter, error) {
	return otlptracehttp.New(context.Background(),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithEndpointURL(conf.EndpointUrl),
		otlptracehttp.WithRetry(otlptracehttp.RetryConfig{
			Enabled:         true,
			InitialInterval: 5 * time.Second,
			MaxInterval:     10 * time.Second,
			MaxElapsedTime:  time.Minute,
		}),
		otlptracehttp.WithTimeout(exporterTimeout),
	)
}

func newSampler(conf config.TraceConfig) sdktrace.Sampler {
	if ratio, ok := conf.Sampled(); ok {
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
	return sdktrace.AlwaysSample()
}

func (t *Trace) tracer() trace.Tracer {
	if t == nil || t.TracerProvider == nil {
		return noop.NewTracerProvider().Tracer(noopTracerName)
	}
	return t.TracerProvider.Tracer(t.ServiceName)
}

// StartSpanForLayer 以固定名稱開 span，middleware 與 Worker 呼叫都走這裡
func (t *Trace) StartSpanForLayer(
	ctx context.Context,
	spanName core.TraceSpanName,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	return t.tracer().Start(ctx, string(spanName), opts...)
}

// WithSpan parent 可為 *gin.Context 或 context.Context
// gin 版本會把新的 ctx 寫回 gin，名稱預設取 handler 名
// context 版本名稱預設取呼叫者的方法名
func (t *Trace) WithSpan(parent interface{}, name ...string) (context.Context, trace.Span, func(error)) {
	override := ""
	if len(name) > 0 {
		override = strings.TrimSpace(name[0])
	}

	var (
		ctx  context.Context
		span trace.Span
	)
	switch p := parent.(type) {
	case *gin.Context:
		ctx, span = t.StartSpanForLayer(t.GetTraceContext(p), spanName(override, ginSpanName(p)))
		p.Set(core.ContextTraceKey, ctx)
	case context.Context:
		ctx, span = t.StartSpanForLayer(p, spanName(override, prettifyFuncName(callerFuncName(callerSkipFrames))))
	default:
		ctx, span = t.StartSpanForLayer(context.Background(), spanName(override, ""))
	}
	return ctx, span, func(err error) { t.EndSpan(span, err) }
}

// EndSpan 有錯誤時標記 span 為 Error 再結束
func (t *Trace) EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// GetTraceContext 取 TraceEntry 寫進 gin 的 ctx，沒有就退回 request ctx
func (t *Trace) GetTraceContext(c *gin.Context) context.Context {
	if v, ok := c.Get(core.ContextTraceKey); ok {
		if ctx, ok := v.(context.Context); ok {
			return ctx
		}
	}
	return c.Request.Context()
}

func spanName(override, fallback string) core.TraceSpanName {
	switch {
	case override != "":
		return core.TraceSpanName(override)
	case fallback != "":
		return core.TraceSpanName(fallback)
	default:
		return unknownSpanName
	}
}

func ginSpanName(c *gin.Context) string {
	if hn := c.HandlerName(); hn != "" {
		return prettifyFuncName(hn)
	}
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	return c.Request.Method + " " + route
}

// prettifyFuncName "pkg/path.(*Type).Method-fm" → "Type.Method"
func prettifyFuncName(full string) string {
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	full = strings.TrimSuffix(full, "-fm")
	if i := strings.LastIndex(full, ".func"); i >= 0 {
		full = full[:i]
	}
	if i := strings.Index(full, "."); i >= 0 {
		full = full[i+1:]
	}
	return strings.NewReplacer("(*", "", "(", "", ")", "").Replace(full)
}

func callerFuncName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fn.Name()
	}
	return ""
}
