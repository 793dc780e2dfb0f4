package handler

import (
	"context"

	"zai-console/internal/middleware"
	"zai-console/internal/pkg/response"
	"zai-console/internal/service"
	"zai-console/internal/telemetry"

	"github.com/gin-gonic/gin"
)

type AdminAccountHandler struct {
	trace       *telemetry.Trace
	passthrough *service.PassthroughService
}

func NewAdminAccountHandler(trace *telemetry.Trace, passthrough *service.PassthroughService) *AdminAccountHandler {
	return &AdminAccountHandler{trace: trace, passthrough: passthrough}
}

type bodyRelay func(ctx context.Context, adminKey string, body []byte) ([]byte, error)

// Refresh 重新取得帳號 token
// @Summary 刷新帳號 Token
// @Tags Admin-Account
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.RefreshAccountRequest true "帳號 ID"
// @Success 200 {object} dto.WorkerResult
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/admin/accounts/refresh [post]
func (h *AdminAccountHandler) Refresh(c *gin.Context) {
	h.relayBody(c, h.passthrough.RefreshAccount, "account refreshed")
}

// Add 手動新增帳號
// @Summary 新增帳號
// @Tags Admin-Account
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.AddAccountRequest true "帳號資料"
// @Success 200 {object} dto.WorkerResult
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/admin/accounts/add [post]
func (h *AdminAccountHandler) Add(c *gin.Context) {
	h.relayBody(c, h.passthrough.AddAccount, "account added")
}

// BrowserLogin 由 Worker 端啟動瀏覽器登入流程
// @Summary 瀏覽器登入新增帳號
// @Tags Admin-Account
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.BrowserLoginRequest true "帳號名稱"
// @Success 200 {object} dto.WorkerResult
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/admin/accounts/login [post]
func (h *AdminAccountHandler) BrowserLogin(c *gin.Context) {
	h.relayBody(c, h.passthrough.BrowserLoginAccount, "browser login started")
}

// Delete 刪除帳號
// @Summary 刪除帳號
// @Tags Admin-Account
// @Security BearerAuth
// @Produce json
// @Param id path string true "帳號 ID"
// @Success 200 {object} dto.WorkerResult
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/admin/accounts/{id} [delete]
func (h *AdminAccountHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)

	body, err := h.passthrough.DeleteAccount(ctx, middleware.AdminKeyFrom(c), c.Param("id"))
	if err != nil {
		end(err)
		abortWithError(c, err)
		return
	}
	end(nil)
	response.Raw(c, body, "account deleted")
}

func (h *AdminAccountHandler) relayBody(c *gin.Context, call bodyRelay, message string) {
	ctx, _, end := h.trace.WithSpan(c)

	body, err := readBody(c)
	if err == nil {
		body, err = call(ctx, middleware.AdminKeyFrom(c), body)
	}
	if err != nil {
		end(err)
		abortWithError(c, err)
		return
	}
	end(nil)
	response.Raw(c, body, message)
}
