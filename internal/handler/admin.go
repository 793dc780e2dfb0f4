package handler

import (
	"zai-console/internal/middleware"
	cErr "zai-console/internal/pkg/error"
	"zai-console/internal/pkg/response"
	"zai-console/internal/service"
	"zai-console/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
)

type AdminHandler struct {
	trace     *telemetry.Trace
	dashboard *service.DashboardService
}

func NewAdminHandler(trace *telemetry.Trace, dashboard *service.DashboardService) *AdminHandler {
	return &AdminHandler{trace: trace, dashboard: dashboard}
}

// Auth 驗證管理員密鑰並預載全部後台資料
// @Summary 管理員登入
// @Description 驗證 admin key（須以 admin-sk- 開頭），成功時一次回傳 users / accounts / stats / recent_logs / config
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body dto.AuthRequest true "管理員密鑰"
// @Success 200 {object} dto.DashboardPayload
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/admin/auth [post]
func (h *AdminHandler) Auth(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)

	body, err := readBody(c)
	if err != nil {
		end(err)
		abortWithError(c, cErr.BadRequestBody("read body failed").Wrap(err))
		return
	}
	adminKey, err := adminKeyFromBody(body)
	if err != nil {
		end(err)
		abortWithError(c, err)
		return
	}

	payload, err := h.dashboard.Load(ctx, adminKey)
	if err != nil {
		end(err)
		abortWithError(c, err)
		return
	}
	end(nil)
	response.Raw(c, payload, "dashboard loaded")
}

// Data 以 Bearer 取得最新後台資料（與 Auth 相同流程）
// @Summary 重新載入後台資料
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.DashboardPayload
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/admin/data [get]
func (h *AdminHandler) Data(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)

	payload, err := h.dashboard.Load(ctx, middleware.AdminKeyFrom(c))
	if err != nil {
		end(err)
		abortWithError(c, err)
		return
	}
	end(nil)
	response.Raw(c, payload, "dashboard loaded")
}

// adminKeyFromBody 非 JSON 視為錯誤（500）；缺少或 null 視為空字串（401）
func adminKeyFromBody(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", cErr.BadRequestBody("request body is not valid json")
	}
	root := gjson.ParseBytes(body)
	if root.Type == gjson.Null {
		return "", cErr.BadRequestBody("request body is null")
	}
	v := root.Get("admin_key")
	switch v.Type {
	case gjson.String:
		return v.String(), nil
	case gjson.Null, gjson.False:
		return "", nil
	case gjson.Number:
		// 0 與空字串一樣視為未提供
		if v.Float() == 0 {
			return "", nil
		}
		return "", cErr.BadRequestBody("admin_key is not a string")
	default:
		return "", cErr.BadRequestBody("admin_key is not a string")
	}
}
