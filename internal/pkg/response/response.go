package response

import (
	"encoding/json"
	"net/http"

	cErr "zai-console/internal/pkg/error"

	"github.com/gin-gonic/gin"
)

// Context keys，handler 只設定資料，由 Response middleware 統一寫出
const (
	KeyData    = "data"
	KeyStatus  = "status"
	KeyMessage = "message"
)

// Response 錯誤回應格式
type Response struct {
	RequestID   string `json:"requestID"`
	Code        int    `json:"code"`
	Data        any    `json:"data"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

// Raw 已是 JSON 的 body，原樣回傳（200）
func Raw(c *gin.Context, body []byte, message string) {
	c.Set(KeyData, json.RawMessage(body))
	c.Set(KeyStatus, http.StatusOK)
	c.Set(KeyMessage, message)
	c.Abort()
}

func AbortWithError(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()
}

func Fail(c *gin.Context, RequestID string, httpCode int, errorCode int, msg string, desc string) {
	c.JSON(httpCode, Response{
		RequestID:   RequestID,
		Code:        errorCode,
		Data:        nil,
		Message:     msg,
		Description: desc,
	})
	c.Abort()
}

func FailByErr(c *gin.Context, RequestID string, err error) {
	v := cErr.From(err)
	Fail(c, RequestID, v.HttpCode(), v.ErrorCode(), v.Error(), v.ErrorDesc())
}
