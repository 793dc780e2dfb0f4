package router

import (
	"net/http"

	docs "zai-console/cmd/docs"
	"zai-console/config"
	"zai-console/internal/middleware"
	"zai-console/internal/pkg/response"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var ProviderSet = wire.NewSet(
	NewRouter,
	NewAdminRouter,
	NewHealthRouter,
)

// NewRouter 組裝 BFF 的 gin.Engine
// middleware 順序：版本標頭 → trace → log → cors → recovery → response
func NewRouter(
	conf *config.Configuration,
	traceEntry *middleware.TraceEntry,
	recovery *middleware.Recovery,
	cors *middleware.Cors,
	logger *middleware.Logger,
	responseMiddleware *middleware.Response,
	adminRouter *AdminRouter,
	healthRouter *HealthRouter,
) *gin.Engine {
	gin.SetMode(conf.App.GinMode())

	engine := gin.New()
	engine.Use(
		appVersionHeader(conf.App.Version),
		traceEntry.Handler(),
		logger.LoggerHandler(),
		cors.CorsHandler(),
		recovery.ErrorHandler(),
		responseMiddleware.FormatHandler(),
	)

	engine.GET("/health-check", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if conf.App.SwaggerEnabled {
		registerSwagger(engine, conf.App.IsProduction())
	}

	healthRouter.RegisterHealthRoutes(engine)
	adminRouter.RegisterRoutes(engine)
	pprof.Register(engine)
	return engine
}

func appVersionHeader(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if version != "" {
			c.Header("X-App-Version", version)
		}
		c.Next()
	}
}

// healthCheck 舊版探針，保留給既有的負載平衡設定
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, response.Response{
		Code:        0,
		Data:        "ok",
		Message:     "success",
		Description: "service is alive",
	})
	c.Abort()
}

func registerSwagger(engine *gin.Engine, https bool) {
	engine.GET("/swagger/*any", func(c *gin.Context) {
		docs.SwaggerInfo.Host = c.Request.Host
		if https {
			docs.SwaggerInfo.Schemes = []string{"https"}
		}
	}, ginSwagger.WrapHandler(swaggerFiles.Handler))
}
