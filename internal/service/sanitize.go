package service

import (
	"encoding/json"
	"math"
	"time"

	"zai-console/internal/core"
	"zai-console/internal/dto"
	"zai-console/utils/apikey"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Expiry 帳號 expires_at 的解析結果
// Present 但 !Valid 表示有值卻無法解析
type Expiry struct {
	Present bool
	Valid   bool
	At      time.Time
}

var expiryLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseExpiry 接受 RFC 3339、D1 的 "YYYY-MM-DD HH:MM:SS"（UTC）與毫秒 epoch
func ParseExpiry(v gjson.Result) Expiry {
	switch v.Type {
	case gjson.Null: // 缺欄位也是 Null
		return Expiry{}
	case gjson.Number:
		return Expiry{Present: true, Valid: true, At: time.UnixMilli(v.Int()).UTC()}
	case gjson.String:
		s := v.String()
		if s == "" {
			return Expiry{}
		}
		for _, layout := range expiryLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return Expiry{Present: true, Valid: true, At: t}
			}
		}
		return Expiry{Present: true}
	default:
		// true/false/object/array
		return Expiry{Present: true}
	}
}

// TokenStatus 兩種 token 都沒有 → missing；過期 → expired；其餘 valid
func TokenStatus(hasToken, hasDiscordToken bool, exp Expiry, now time.Time) core.TokenStatus {
	if !hasToken && !hasDiscordToken {
		return core.TokenStatusMissing
	}
	if exp.Present && exp.Valid && exp.At.Before(now) {
		return core.TokenStatusExpired
	}
	return core.TokenStatusValid
}

// ExpiresInHours 無到期時間回 nil；已過期或無法解析回 0
func ExpiresInHours(exp Expiry, now time.Time) *int {
	if !exp.Present {
		return nil
	}
	hours := 0
	if exp.Valid {
		h := math.Floor(exp.At.Sub(now).Hours())
		if h > 0 {
			hours = int(h)
		}
	}
	return &hours
}

// ExpiringSoon 計算 expires_in_hours < 48 的帳號數
func ExpiringSoon(accounts []dto.SanitizedAccount) int {
	n := 0
	for _, a := range accounts {
		if a.ExpiresInHours != nil && *a.ExpiresInHours < core.ExpiringSoonHours {
			n++
		}
	}
	return n
}

// SanitizeUser 只改寫 api_key，其餘欄位原樣保留
func SanitizeUser(raw gjson.Result) (json.RawMessage, error) {
	key := raw.Get("api_key")
	if !raw.IsObject() || key.Type != gjson.String {
		return json.RawMessage(raw.Raw), nil
	}
	out, err := sjson.SetBytes([]byte(raw.Raw), "api_key", apikey.MaskAPIKey(key.String()))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SanitizeAccount 白名單輸出，token 本身只檢查是否存在
func SanitizeAccount(raw gjson.Result, now time.Time) dto.SanitizedAccount {
	exp := ParseExpiry(raw.Get("expires_at"))
	return dto.SanitizedAccount{
		ID:                 rawField(raw, "id"),
		Name:               rawField(raw, "name"),
		TokenSource:        rawField(raw, "token_source"),
		CreatedAt:          rawField(raw, "created_at"),
		ExpiresAt:          rawField(raw, "expires_at"),
		IsActive:           rawField(raw, "is_active"),
		TotalCalls:         rawField(raw, "total_calls"),
		LastUsedAt:         rawField(raw, "last_used_at"),
		DiscordUsername:    rawField(raw, "discord_username"),
		DiscordTokenStatus: TokenStatus(tokenPresent(raw, "token"), tokenPresent(raw, "discord_token"), exp, now),
		LastRefreshAt:      rawField(raw, "last_refresh_at"),
		ExpiresInHours:     ExpiresInHours(exp, now),
	}
}

func tokenPresent(raw gjson.Result, field string) bool {
	v := raw.Get(field)
	return v.Type == gjson.String && v.String() != ""
}

func rawField(raw gjson.Result, field string) json.RawMessage {
	v := raw.Get(field)
	if !v.Exists() {
		return nil
	}
	return json.RawMessage(v.Raw)
}
