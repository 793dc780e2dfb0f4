package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"
	"unicode/utf8"

	"zai-console/config"
	"zai-console/internal/core"
	"zai-console/internal/database/fluentd/model"
	"zai-console/internal/database/fluentd/repository"
	cErr "zai-console/internal/pkg/error"
	res "zai-console/internal/pkg/response"
	"zai-console/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// 500 對外固定描述，細節只進 log
const serverErrorDesc = "server error"

type Recovery struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewRecovery(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Recovery {
	return &Recovery{
		logger:            logger,
		trace:             trace,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

func (middleware *Recovery) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestTime := requestStart(c)
		// ---- panic recover 必須在 c.Next() 之前註冊 ----
		defer func() {
			if rec := recover(); rec != nil {
				duration := time.Since(requestTime)
				ctx, span, end := middleware.trace.WithSpan(middleware.trace.GetTraceContext(c), string(core.SpanRecoveryMiddleware))
				requestID := middleware.requestID(c)

				meta := core.TracePanicMeta{
					Path:       c.Request.URL.Path,
					Method:     c.Request.Method,
					ClientIP:   c.ClientIP(),
					UserAgent:  c.Request.UserAgent(),
					DurationMs: float64(duration.Milliseconds()),
					Message:    toSafeString(fmt.Sprint(rec)),
					Stack:      toSafeStack(debug.Stack()),
					Status:     http.StatusInternalServerError,
				}
				middleware.trace.ApplyTraceAttributes(span, meta)

				middleware.logger.Error("[PANIC] Recovered",
					zap.String("path", meta.Path),
					zap.String("method", meta.Method),
					zap.String("client_ip", meta.ClientIP),
					zap.Duration("duration", duration),
					zap.String("panic", meta.Message),
					zap.String("stacktrace", meta.Stack),
					zap.String("requestId", requestID),
				)

				appErr := cErr.InternalServer(serverErrorDesc)
				if !c.Writer.Written() {
					res.FailByErr(c, requestID, appErr)
				}
				middleware.shipResponse(ctx, c, requestID, appErr, duration, meta.Message)
				end(errors.New(meta.Message))
				c.Abort()
			}
		}()

		c.Next()

		// ---- 統一處理非 panic 的 gin errors（若尚未回寫）----
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		duration := time.Since(requestTime)
		ctx, span, end := middleware.trace.WithSpan(middleware.trace.GetTraceContext(c), string(core.SpanRecoveryMiddleware))
		requestID := middleware.requestID(c)

		appErr, detail := firstAppError(c.Errors)
		meta := core.TraceErrorMeta{
			Code:       appErr.ErrorCode(),
			Message:    appErr.Error(),
			Detail:     toSafeString(detail),
			DurationMs: float64(duration.Milliseconds()),
			Status:     appErr.HttpCode(),
		}
		middleware.trace.ApplyTraceAttributes(span, meta)

		fields := []zap.Field{
			zap.Int("code", appErr.ErrorCode()),
			zap.Int("status", appErr.HttpCode()),
			zap.String("path", c.Request.URL.Path),
			zap.String("detail", meta.Detail),
			zap.Duration("duration", duration),
			zap.String("requestId", requestID),
		}
		if appErr.HttpCode() >= http.StatusInternalServerError {
			middleware.logger.Error(appErr.Error(), fields...)
		} else {
			middleware.logger.Warn(appErr.Error(), fields...)
		}

		res.FailByErr(c, requestID, appErr)
		middleware.shipResponse(ctx, c, requestID, appErr, duration, detail)
		end(appErr)
		c.Abort()
	}
}

// firstAppError 找第一個 *cErr.Error；都不是則視為 500
// 500 的描述統一換成 serverErrorDesc，原始描述與 cause 放進 detail
func firstAppError(errs []*gin.Error) (*cErr.Error, string) {
	for _, e := range errs {
		var appErr *cErr.Error
		if errors.As(e.Err, &appErr) {
			detail := appErr.ErrorDesc()
			if cause := appErr.Unwrap(); cause != nil {
				detail += ": " + cause.Error()
			}
			if appErr.HttpCode() >= http.StatusInternalServerError && appErr.ErrorDesc() != serverErrorDesc {
				return cErr.New(appErr.HttpCode(), appErr.ErrorCode(), appErr.Error(), serverErrorDesc), detail
			}
			return appErr, detail
		}
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return cErr.InternalServer(serverErrorDesc), strings.Join(msgs, "; ")
}

// requestID 有 trace 時沿用 trace id，否則產生 uuid v7
func (middleware *Recovery) requestID(c *gin.Context) string {
	sc := trace.SpanContextFromContext(middleware.trace.GetTraceContext(c))
	if sc.HasTraceID() {
		tid := sc.TraceID()
		return fmt.Sprintf("%x", tid[:])
	}
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

func (middleware *Recovery) shipResponse(ctx context.Context, c *gin.Context, requestID string, appErr *cErr.Error, duration time.Duration, detail string) {
	responseLog := model.ResponseLog{
		RequestID:  requestID,
		Path:       c.Request.URL.Path,
		Code:       appErr.ErrorCode(),
		StatusCode: appErr.HttpCode(),
		Error:      toSafeString(detail),
		LatencyMs:  float64(duration.Microseconds()) / 1000,
		ResponseTS: time.Now().UTC().Format("2006-01-02 15:04:05.999999 UTC"),
		Version:    middleware.config.App.Version,
	}
	if err := middleware.fluentdRepository.LogResponse(ctx, responseLog); err != nil {
		middleware.logger.Debug("ship response log failed", zap.Error(err))
	}
}

// ---- helpers ----

func toSafeString(s string) string {
	const max = 8000
	if utf8.ValidString(s) {
		if len(s) > max {
			return s[:max] + "…"
		}
		return s
	}
	b := []byte(s)
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

func toSafeStack(b []byte) string {
	const max = 16000
	if utf8.Valid(b) {
		if len(b) > max {
			return string(b[:max]) + "…"
		}
		return string(b)
	}
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}
