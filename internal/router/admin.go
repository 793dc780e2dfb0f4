package router

import (
	"zai-console/internal/handler"
	"zai-console/internal/middleware"

	"github.com/gin-gonic/gin"
)

type AdminRouter struct {
	adminHandler   *handler.AdminHandler
	userHandler    *handler.AdminUserHandler
	accountHandler *handler.AdminAccountHandler
	configHandler  *handler.AdminConfigHandler
	bearer         *middleware.Bearer
}

func NewAdminRouter(
	adminHandler *handler.AdminHandler,
	userHandler *handler.AdminUserHandler,
	accountHandler *handler.AdminAccountHandler,
	configHandler *handler.AdminConfigHandler,
	bearer *middleware.Bearer,
) *AdminRouter {
	return &AdminRouter{
		adminHandler:   adminHandler,
		userHandler:    userHandler,
		accountHandler: accountHandler,
		configHandler:  configHandler,
		bearer:         bearer,
	}
}

func (ar *AdminRouter) RegisterRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin")
	{
		// 登入時 key 在 body 內
		admin.POST("/auth", ar.adminHandler.Auth)

		authed := admin.Group("", ar.bearer.Handler())
		authed.GET("/data", ar.adminHandler.Data)

		users := authed.Group("/users")
		{
			users.POST("/create", ar.userHandler.Create)
			users.DELETE("/:id", ar.userHandler.Delete)
		}

		accounts := authed.Group("/accounts")
		{
			accounts.POST("/refresh", ar.accountHandler.Refresh)
			accounts.POST("/add", ar.accountHandler.Add)
			accounts.POST("/login", ar.accountHandler.BrowserLogin)
			accounts.DELETE("/:id", ar.accountHandler.Delete)
		}

		authed.POST("/config", ar.configHandler.Update)
	}
}
