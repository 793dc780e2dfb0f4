package middleware

import (
	"net/http"

	"zai-console/config"
	"zai-console/internal/core"
	"zai-console/internal/telemetry"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type corsMeta struct {
	AllowOrigins []string `trace:"http.cors.allow_origins"`
	AllowMethods []string `trace:"http.cors.allow_methods"`
	AllowHeaders []string `trace:"http.cors.allow_headers"`
}

type Cors struct {
	trace *telemetry.Trace
	cfg   cors.Config
}

// NewCors 管理後台只用 Bearer header，不帶 cookie
func NewCors(trace *telemetry.Trace, conf *config.Configuration) *Cors {
	return &Cors{
		trace: trace,
		cfg: cors.Config{
			AllowOrigins:     conf.App.AllowedOrigins(),
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Content-Type", "Authorization"},
			AllowCredentials: false,
		},
	}
}

// CorsHandler ambient 路徑只套 CORS 不開 span，避免 preflight 失敗
func (m *Cors) CorsHandler() gin.HandlerFunc {
	apply := cors.New(m.cfg)
	meta := corsMeta{
		AllowOrigins: m.cfg.AllowOrigins,
		AllowMethods: m.cfg.AllowMethods,
		AllowHeaders: m.cfg.AllowHeaders,
	}
	return func(c *gin.Context) {
		if !isAmbientPath(c.FullPath()) {
			_, span, end := m.trace.WithSpan(m.trace.GetTraceContext(c), string(core.SpanCorsMiddleware))
			m.trace.ApplyTraceAttributes(span, meta)
			end(nil)
		}
		apply(c)
	}
}
