package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"zai-console/config"
	"zai-console/internal/core"
	"zai-console/internal/database/fluentd/model"
	"zai-console/internal/database/fluentd/repository"
	cErr "zai-console/internal/pkg/error"
	"zai-console/internal/pkg/response"
	"zai-console/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 把 handler 以 c.Set 放入的資料直接寫出（不再包一層信封）
type Response struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewResponse(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Response {
	return &Response{
		logger:            logger,
		trace:             trace,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

func (middleware *Response) FormatHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isAmbientPath(c.FullPath()) {
			c.Next()
			return
		}

		requestTime := requestStart(c)

		c.Next()

		// 若已經有錯誤交由 Recovery 處理，或已經寫出回應，就不要再動了
		if len(c.Errors) > 0 || c.Writer.Written() {
			return
		}

		data, hasData := c.Get(response.KeyData)
		statusCode := c.GetInt(response.KeyStatus)
		if statusCode == 0 {
			statusCode = c.Writer.Status()
		}
		// 沒有 handler 設定資料（例如 404 路由）
		if !hasData {
			if statusCode < http.StatusBadRequest {
				statusCode = http.StatusNotFound
			}
			response.AbortWithError(c, cErr.MapHttpStatusToError(statusCode, "request error"))
			return
		}

		ctx, span, end := middleware.trace.WithSpan(middleware.trace.GetTraceContext(c), string(core.SpanResponseMiddleware))

		message := c.GetString(response.KeyMessage)
		if message == "" {
			message = "Request Success"
		}

		body, err := json.Marshal(data)
		if err != nil {
			end(err)
			response.AbortWithError(c, cErr.InternalServer("marshal response failed").Wrap(err))
			return
		}

		duration := time.Since(requestTime)
		traceID := span.SpanContext().TraceID()
		spanID := span.SpanContext().SpanID()

		middleware.trace.ApplyTraceAttributes(span, core.TraceResponseMeta{
			Path:       c.Request.URL.Path,
			Method:     c.Request.Method,
			Status:     statusCode,
			Message:    message,
			DurationMs: float64(duration.Milliseconds()),
			Data:       fmt.Sprintf("(%d bytes)", len(body)),
		})

		middleware.logger.Info("[Response] "+message,
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Int("status", statusCode),
			zap.Int("bytes", len(body)),
			zap.Duration("duration", duration),
			zap.String("spanId", fmt.Sprintf("%x", spanID[:])),
			zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
		)

		// body 含使用者與帳號資料，不送 fluentd
		responseLog := model.ResponseLog{
			RequestID:  fmt.Sprintf("%x", traceID[:]),
			Path:       c.Request.URL.Path,
			StatusCode: statusCode,
			LatencyMs:  float64(duration.Microseconds()) / 1000,
			ResponseTS: time.Now().UTC().Format("2006-01-02 15:04:05.999999 UTC"),
			Version:    middleware.config.App.Version,
		}
		if err := middleware.fluentdRepository.LogResponse(ctx, responseLog); err != nil {
			middleware.logger.Debug("ship response log failed", zap.Error(err))
		}

		end(nil)
		c.Data(statusCode, "application/json; charset=utf-8", body)
	}
}
