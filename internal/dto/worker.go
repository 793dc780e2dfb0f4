package dto

import "encoding/json"

// 以下為 Worker API 寫入端點的請求格式，只用於文件與 console 組 body；
// BFF 轉送時不重新序列化，原始 body 直接送出

type CreateUserRequest struct {
	Name      string `json:"name" binding:"required" example:"alice"`
	RateLimit int    `json:"rate_limit" example:"100"`
}

type RefreshAccountRequest struct {
	AccountID int64 `json:"account_id" binding:"required" example:"3"`
}

type AddAccountRequest struct {
	Name         string `json:"name" binding:"required"`
	Token        string `json:"token" binding:"required"`
	DiscordToken string `json:"discord_token,omitempty"`
}

type BrowserLoginRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateConfigRequest struct {
	Key   string          `json:"key" binding:"required" example:"default_model"`
	Value json.RawMessage `json:"value" swaggertype:"object"`
}

// WorkerResult 上游寫入端點的共通回應格式（其餘欄位原樣保留）
type WorkerResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
