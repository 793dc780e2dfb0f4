package apikey

import (
	"strings"

	"zai-console/internal/core"
)

// 短於此長度的 key 不遮罩
const maskMinLength = 16

// MaskAPIKey 保留前 10 與後 6 字元，中間以 "..." 取代
func MaskAPIKey(key string) string {
	if len(key) < maskMinLength {
		return key
	}
	return key[:10] + "..." + key[len(key)-6:]
}

// HasAdminPrefix 非空且以 admin-sk- 開頭
func HasAdminPrefix(key string) bool {
	return key != "" && strings.HasPrefix(key, core.AdminKeyPrefix)
}

// FromBearer 移除第一個 "Bearer "，不檢查其位置
func FromBearer(header string) string {
	return strings.Replace(header, "Bearer ", "", 1)
}
