package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewTraceEntry,
	NewCors,
	NewLogger,
	NewRecovery,
	NewBearer,
	NewResponse,
)

// 這些路徑不做 tracing / 請求紀錄 / 統一回應
func isAmbientPath(endpoint string) bool {
	return strings.HasPrefix(endpoint, "/swagger") ||
		strings.HasPrefix(endpoint, "/metrics") ||
		strings.HasPrefix(endpoint, "/version") ||
		strings.HasPrefix(endpoint, "/health") ||
		strings.HasPrefix(endpoint, "/debug/pprof")
}

// requestStart 取 TraceEntry 記下的請求開始時間，沒有就以現在為準並寫回
func requestStart(c *gin.Context) time.Time {
	if v, ok := c.Get(requestStartKey); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	now := time.Now()
	c.Set(requestStartKey, now)
	return now
}
