package handler

import (
	"zai-console/internal/middleware"
	"zai-console/internal/pkg/response"
	"zai-console/internal/service"
	"zai-console/internal/telemetry"

	"github.com/gin-gonic/gin"
)

type AdminUserHandler struct {
	trace       *telemetry.Trace
	passthrough *service.PassthroughService
}

func NewAdminUserHandler(trace *telemetry.Trace, passthrough *service.PassthroughService) *AdminUserHandler {
	return &AdminUserHandler{trace: trace, passthrough: passthrough}
}

// Create 建立 API 使用者
// @Summary 建立使用者
// @Description 原樣轉送到 Worker API；成功時回應含一次性的完整 api_key
// @Tags Admin-User
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateUserRequest true "使用者資料"
// @Success 200 {object} dto.WorkerResult
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/admin/users/create [post]
func (h *AdminUserHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)

	body, err := readBody(c)
	if err == nil {
		body, err = h.passthrough.CreateUser(ctx, middleware.AdminKeyFrom(c), body)
	}
	if err != nil {
		end(err)
		abortWithError(c, err)
		return
	}
	end(nil)
	response.Raw(c, body, "user created")
}

// Delete 刪除使用者
// @Summary 刪除使用者
// @Tags Admin-User
// @Security BearerAuth
// @Produce json
// @Param id path string true "使用者 ID"
// @Success 200 {object} dto.WorkerResult
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/admin/users/{id} [delete]
func (h *AdminUserHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)

	body, err := h.passthrough.DeleteUser(ctx, middleware.AdminKeyFrom(c), c.Param("id"))
	if err != nil {
		end(err)
		abortWithError(c, err)
		return
	}
	end(nil)
	response.Raw(c, body, "user deleted")
}
