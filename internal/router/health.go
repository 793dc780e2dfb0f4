package router

import (
	"zai-console/internal/handler"

	"github.com/gin-gonic/gin"
)

// HealthRouter k8s 探針用，不經 bearer
type HealthRouter struct {
	healthHandler *handler.HealthHandler
}

func NewHealthRouter(healthHandler *handler.HealthHandler) *HealthRouter {
	return &HealthRouter{healthHandler: healthHandler}
}

func (hr *HealthRouter) RegisterHealthRoutes(r *gin.Engine) {
	g := r.Group("/health")
	{
		g.GET("/liveness", hr.healthHandler.Liveness)
		g.GET("/readiness", hr.healthHandler.Readiness)
	}
}
