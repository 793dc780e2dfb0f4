package handler

import (
	"zai-console/internal/middleware"
	"zai-console/internal/pkg/response"
	"zai-console/internal/service"
	"zai-console/internal/telemetry"

	"github.com/gin-gonic/gin"
)

type AdminConfigHandler struct {
	trace       *telemetry.Trace
	passthrough *service.PassthroughService
}

func NewAdminConfigHandler(trace *telemetry.Trace, passthrough *service.PassthroughService) *AdminConfigHandler {
	return &AdminConfigHandler{trace: trace, passthrough: passthrough}
}

// Update 更新單一系統設定
// @Summary 更新系統設定
// @Tags Admin-Config
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.UpdateConfigRequest true "設定鍵值"
// @Success 200 {object} dto.WorkerResult
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/admin/config [post]
func (h *AdminConfigHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)

	body, err := readBody(c)
	if err == nil {
		body, err = h.passthrough.UpdateConfig(ctx, middleware.AdminKeyFrom(c), body)
	}
	if err != nil {
		end(err)
		abortWithError(c, err)
		return
	}
	end(nil)
	response.Raw(c, body, "config updated")
}
