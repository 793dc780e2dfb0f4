package middleware

import (
	"fmt"

	"zai-console/internal/core"
	cErr "zai-console/internal/pkg/error"
	"zai-console/internal/pkg/response"
	"zai-console/internal/telemetry"
	"zai-console/utils/apikey"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Bearer 從 Authorization 取出 admin key，不在此驗證前綴或有效性
type Bearer struct {
	logger *zap.Logger
	trace  *telemetry.Trace
}

func NewBearer(logger *zap.Logger, trace *telemetry.Trace) *Bearer {
	return &Bearer{logger: logger, trace: trace}
}

func (middleware *Bearer) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span, end := middleware.trace.WithSpan(middleware.trace.GetTraceContext(c), string(core.SpanBearerMiddleware))
		header := c.GetHeader("Authorization")
		meta := core.TraceBearerMiddlewareMeta{
			ClientIP:  c.ClientIP(),
			HasHeader: header != "",
		}

		if header == "" {
			meta.Status = "missing_authorization"
			middleware.trace.ApplyTraceAttributes(span, meta)
			cause := cErr.Unauthorized("unauthorized")
			response.AbortWithError(c, cause)
			end(cause)
			return
		}

		adminKey := apikey.FromBearer(header)
		meta.KeyMasked = apikey.MaskAPIKey(adminKey)
		meta.Status = "extracted"
		middleware.trace.ApplyTraceAttributes(span, meta)

		traceID := span.SpanContext().TraceID()
		middleware.logger.Debug("[Bearer] admin key extracted",
			zap.String("key", meta.KeyMasked),
			zap.String("path", c.FullPath()),
			zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
		)
		end(nil)

		c.Set(core.ContextAdminKey, adminKey)
		c.Next()
	}
}

// AdminKeyFrom handler 取得 Bearer 存入的 key
func AdminKeyFrom(c *gin.Context) string {
	return c.GetString(core.ContextAdminKey)
}
