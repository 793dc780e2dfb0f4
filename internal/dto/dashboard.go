package dto

import (
	"encoding/json"

	"zai-console/internal/core"
)

// AuthRequest POST /api/admin/auth
type AuthRequest struct {
	AdminKey string `json:"admin_key" example:"admin-sk-xxxxxxxxxxxx"`
}

// SanitizedAccount 帳號白名單欄位；token 與 discord_token 永不輸出
// 上游缺少的欄位維持缺少（omitempty），null 則原樣保留
type SanitizedAccount struct {
	ID                 json.RawMessage  `json:"id,omitempty" swaggertype:"integer"`
	Name               json.RawMessage  `json:"name,omitempty" swaggertype:"string"`
	TokenSource        json.RawMessage  `json:"token_source,omitempty" swaggertype:"string"`
	CreatedAt          json.RawMessage  `json:"created_at,omitempty" swaggertype:"string"`
	ExpiresAt          json.RawMessage  `json:"expires_at,omitempty" swaggertype:"string"`
	IsActive           json.RawMessage  `json:"is_active,omitempty" swaggertype:"boolean"`
	TotalCalls         json.RawMessage  `json:"total_calls,omitempty" swaggertype:"integer"`
	LastUsedAt         json.RawMessage  `json:"last_used_at,omitempty" swaggertype:"string"`
	DiscordUsername    json.RawMessage  `json:"discord_username,omitempty" swaggertype:"string"`
	DiscordTokenStatus core.TokenStatus `json:"discord_token_status" enums:"valid,expired,missing"`
	LastRefreshAt      json.RawMessage  `json:"last_refresh_at,omitempty" swaggertype:"string"`
	ExpiresInHours     *int             `json:"expires_in_hours,omitempty"`
}

// DashboardPayload 聚合回應；欄位順序即輸出順序
type DashboardPayload struct {
	Users      []json.RawMessage  `json:"users" swaggertype:"array,object"`
	Accounts   []SanitizedAccount `json:"accounts"`
	Stats      json.RawMessage    `json:"stats" swaggertype:"object"`
	RecentLogs []json.RawMessage  `json:"recent_logs" swaggertype:"array,object"`
	Config     json.RawMessage    `json:"config" swaggertype:"object"`
}
