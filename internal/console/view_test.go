package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const dashboardFixture = `{
	"users":[{"id":1,"name":"alice","api_key":"sk-ABCDEFG...OPQRST","rate_limit":100,"total_requests":5,"last_used_at":null}],
	"accounts":[
		{"id":3,"name":"acc-soon","token_source":"discord","is_active":1,"discord_token_status":"valid","expires_at":"2025-03-02T18:00:00Z","expires_in_hours":5,"total_calls":9},
		{"id":4,"name":"acc-far","is_active":0,"discord_token_status":"expired","expires_in_hours":0},
		{"id":5,"name":"acc-none","discord_token_status":"missing","expires_in_hours":null}
	],
	"stats":{"users":{"total":2,"active":1},"accounts":{"total":3,"active":2,"expiring_soon":1},"requests_24h":{"total":10,"success":8,"error":2}},
	"recent_logs":[{"timestamp":"2025-03-01T10:00:00Z","user_id":1,"account_name":"acc-soon","model":"glm-4.6","status":"SUCCESS","duration":120},
		{"timestamp":"2025-03-01T10:01:00Z","user_id":1,"model":"glm-4.6","status":"ERROR","duration":30,"error_message":"boom"}],
	"config":{"version":"2.0.0","auto_refresh_enabled":true}
}`

func TestRenderOverview(t *testing.T) {
	out := RenderOverview([]byte(dashboardFixture))
	assert.Contains(t, out, "活躍使用者")
	assert.Contains(t, out, "共 3 個")
	assert.Contains(t, out, "即將過期")
	assert.Contains(t, out, "成功 8 (80.0%)")
	assert.Contains(t, out, "失敗 2 (20.0%)")
}

func TestRenderUsers(t *testing.T) {
	out := RenderUsers([]byte(dashboardFixture))
	assert.Contains(t, out, "sk-ABCDEFG...OPQRST")
	assert.Contains(t, out, "100/小時")
	assert.Contains(t, out, "未使用")
}

func TestRenderAccounts(t *testing.T) {
	out := RenderAccounts([]byte(dashboardFixture))
	assert.Contains(t, out, "acc-soon")
	assert.Contains(t, out, "(5 小時後過期)")
	assert.Contains(t, out, "已過期")
	assert.Contains(t, out, "未設定")
	assert.Contains(t, out, "停用")
}

func TestRenderLogsAndConfig(t *testing.T) {
	logs := RenderLogs([]byte(dashboardFixture))
	assert.Contains(t, logs, "glm-4.6")
	assert.Contains(t, logs, "120ms")
	assert.Contains(t, logs, "boom")
	assert.Contains(t, logs, "錯誤")

	conf := RenderConfig([]byte(dashboardFixture))
	assert.Contains(t, conf, "auto_refresh_enabled")
	assert.Contains(t, conf, "2.0.0")
}

func TestRenderEmptyCollections(t *testing.T) {
	empty := []byte(`{"users":[],"accounts":[],"recent_logs":[],"config":null}`)
	assert.Contains(t, RenderUsers(empty), "尚無使用者")
	assert.Contains(t, RenderAccounts(empty), "尚無帳號")
	assert.Contains(t, RenderLogs(empty), "尚無日誌")
	assert.Contains(t, RenderConfig(empty), "無法取得設定")
}

func TestRenderResult(t *testing.T) {
	out, ok := RenderResult("刪除帳號", []byte(`{"success":true}`))
	assert.True(t, ok)
	assert.Contains(t, out, "刪除帳號成功")

	out, ok = RenderResult("刪除帳號", []byte(`{"success":false,"message":"not found"}`))
	assert.False(t, ok)
	assert.Contains(t, out, "刪除帳號失敗: not found")

	out, ok = RenderCreatedUser([]byte(`{"success":true,"api_key":"sk-full"}`))
	assert.True(t, ok)
	assert.Contains(t, out, "API Key: sk-full")
}

func TestRenderSelectsTab(t *testing.T) {
	out := Render(TabConfig, []byte(dashboardFixture))
	assert.Contains(t, out, "Zai-2API 管理控制台")
	assert.Contains(t, out, "auto_refresh_enabled")

	out = Render(Tab("unknown"), []byte(dashboardFixture))
	assert.Contains(t, out, "活躍使用者")
}
