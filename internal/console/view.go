package console

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/tidwall/gjson"
)

// Tab 後台分頁
type Tab string

const (
	TabOverview Tab = "overview"
	TabUsers    Tab = "users"
	TabAccounts Tab = "accounts"
	TabLogs     Tab = "logs"
	TabConfig   Tab = "config"
)

var Tabs = []Tab{TabOverview, TabUsers, TabAccounts, TabLogs, TabConfig}

var tabTitles = map[Tab]string{
	TabOverview: "概覽",
	TabUsers:    "使用者",
	TabAccounts: "帳號",
	TabLogs:     "日誌",
	TabConfig:   "設定",
}

var (
	primary = lipgloss.Color("63")
	subtle  = lipgloss.Color("240")
	success = lipgloss.Color("42")
	danger  = lipgloss.Color("196")
	warning = lipgloss.Color("220")

	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1)
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(primary).Padding(0, 2).MarginRight(1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 2).MarginRight(1)
	cardStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(subtle).Padding(0, 2).MarginRight(1)
	cardValueStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle       = lipgloss.NewStyle().Foreground(subtle)
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(primary).Padding(0, 1)
	cellStyle        = lipgloss.NewStyle().Padding(0, 1)
	successStyle     = lipgloss.NewStyle().Foreground(success)
	dangerStyle      = lipgloss.NewStyle().Foreground(danger)
	warningStyle     = lipgloss.NewStyle().Foreground(warning)
	alertStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
)

// Render 依分頁輸出整個畫面
func Render(tab Tab, dashboard []byte) string {
	var content string
	switch tab {
	case TabUsers:
		content = RenderUsers(dashboard)
	case TabAccounts:
		content = RenderAccounts(dashboard)
	case TabLogs:
		content = RenderLogs(dashboard)
	case TabConfig:
		content = RenderConfig(dashboard)
	default:
		tab = TabOverview
		content = RenderOverview(dashboard)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Zai-2API 管理控制台"),
		renderTabs(tab),
		"",
		content,
	)
}

func renderTabs(active Tab) string {
	parts := make([]string, 0, len(Tabs))
	for _, t := range Tabs {
		if t == active {
			parts = append(parts, activeTabStyle.Render(tabTitles[t]))
		} else {
			parts = append(parts, inactiveTabStyle.Render(tabTitles[t]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func RenderOverview(dashboard []byte) string {
	stats := gjson.GetBytes(dashboard, "stats")
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("活躍使用者", stats.Get("users.active").Int(), fmt.Sprintf("共 %d 個", stats.Get("users.total").Int())),
		card("可用帳號", stats.Get("accounts.active").Int(), fmt.Sprintf("共 %d 個", stats.Get("accounts.total").Int())),
		card("24 小時請求", stats.Get("requests_24h.total").Int(), ""),
		card("即將過期", stats.Get("accounts.expiring_soon").Int(), "48 小時內"),
	)

	total := stats.Get("requests_24h.total").Int()
	ok := stats.Get("requests_24h.success").Int()
	failed := stats.Get("requests_24h.error").Int()
	ratio := lipgloss.JoinVertical(lipgloss.Left,
		successStyle.Render(fmt.Sprintf("成功 %d (%s)", ok, percent(ok, total))),
		dangerStyle.Render(fmt.Sprintf("失敗 %d (%s)", failed, percent(failed, total))),
	)
	return lipgloss.JoinVertical(lipgloss.Left, cards, "", ratio)
}

func card(label string, value int64, hint string) string {
	lines := []string{mutedStyle.Render(label), cardValueStyle.Render(strconv.FormatInt(value, 10))}
	if hint != "" {
		lines = append(lines, mutedStyle.Render(hint))
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func percent(n, total int64) string {
	if total <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
}

func RenderUsers(dashboard []byte) string {
	users := gjson.GetBytes(dashboard, "users").Array()
	if len(users) == 0 {
		return mutedStyle.Render("尚無使用者")
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		lastUsed := formatTime(u.Get("last_used_at"))
		if lastUsed == "-" {
			lastUsed = "未使用"
		}
		rows = append(rows, []string{
			text(u.Get("id")),
			text(u.Get("name")),
			text(u.Get("api_key")),
			text(u.Get("rate_limit")) + "/小時",
			text(u.Get("total_requests")),
			lastUsed,
		})
	}
	return renderTable([]string{"ID", "名稱", "API Key", "速率限制", "總請求", "最後使用"}, rows)
}

func RenderAccounts(dashboard []byte) string {
	accounts := gjson.GetBytes(dashboard, "accounts").Array()
	if len(accounts) == 0 {
		return mutedStyle.Render("尚無帳號")
	}
	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		active := dangerStyle.Render("停用")
		if isTruthy(a.Get("is_active")) {
			active = successStyle.Render("啟用")
		}
		rows = append(rows, []string{
			active,
			text(a.Get("id")),
			text(a.Get("name")),
			text(a.Get("token_source")),
			text(a.Get("discord_username")),
			tokenStatus(a.Get("discord_token_status").String()),
			expiry(a),
			text(a.Get("total_calls")),
		})
	}
	return renderTable([]string{"狀態", "ID", "名稱", "來源", "Discord", "Token 狀態", "過期時間", "調用次數"}, rows)
}

func tokenStatus(status string) string {
	switch status {
	case "valid":
		return successStyle.Render("有效")
	case "expired":
		return warningStyle.Render("已過期")
	default:
		return mutedStyle.Render("未設定")
	}
}

// expiry 過期時間加上剩餘時數；0 或 null 不顯示剩餘
func expiry(a gjson.Result) string {
	at := formatTime(a.Get("expires_at"))
	hours := a.Get("expires_in_hours")
	if hours.Type != gjson.Number || hours.Int() <= 0 {
		return at
	}
	h := hours.Int()
	if h < 24 {
		return at + " " + warningStyle.Render(fmt.Sprintf("(%d 小時後過期)", h))
	}
	return at + " " + mutedStyle.Render(fmt.Sprintf("(%d 天後過期)", h/24))
}

func RenderLogs(dashboard []byte) string {
	logs := gjson.GetBytes(dashboard, "recent_logs").Array()
	if len(logs) == 0 {
		return mutedStyle.Render("尚無日誌")
	}
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{
			formatTime(l.Get("timestamp")),
			text(l.Get("user_id")),
			text(l.Get("account_name")),
			text(l.Get("model")),
			logStatus(l.Get("status").String()),
			text(l.Get("duration")) + "ms",
			text(l.Get("error_message")),
		})
	}
	return renderTable([]string{"時間", "使用者 ID", "帳號", "模型", "狀態", "耗時", "錯誤訊息"}, rows)
}

func logStatus(status string) string {
	switch strings.ToUpper(status) {
	case "SUCCESS":
		return successStyle.Render("成功")
	case "ERROR":
		return dangerStyle.Render("錯誤")
	default:
		return warningStyle.Render("逾時")
	}
}

// RenderConfig 設定值原樣列出，順序同上游
func RenderConfig(dashboard []byte) string {
	conf := gjson.GetBytes(dashboard, "config")
	if !conf.IsObject() {
		return mutedStyle.Render("無法取得設定")
	}
	var rows [][]string
	conf.ForEach(func(key, value gjson.Result) bool {
		v := value.Raw
		if value.Type == gjson.String {
			v = value.String()
		}
		rows = append(rows, []string{key.String(), v})
		return true
	})
	return renderTable([]string{"設定", "值"}, rows)
}

// RenderResult 依 success/message 輸出操作結果
func RenderResult(action string, body []byte) (string, bool) {
	if gjson.GetBytes(body, "success").Bool() {
		return alertStyle.BorderForeground(success).Foreground(success).Render(action + "成功"), true
	}
	msg := gjson.GetBytes(body, "message").String()
	if msg == "" {
		msg = gjson.GetBytes(body, "error").String()
	}
	return RenderFailure(action, msg), false
}

// RenderCreatedUser 完整 API Key 只會顯示這一次
func RenderCreatedUser(body []byte) (string, bool) {
	if !gjson.GetBytes(body, "success").Bool() {
		return RenderResult("建立使用者", body)
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		"使用者建立成功！",
		"",
		"API Key: "+gjson.GetBytes(body, "api_key").String(),
		"",
		"請複製保存，此密鑰不會再次顯示。",
	)
	return alertStyle.BorderForeground(success).Render(content), true
}

func RenderFailure(action, msg string) string {
	return alertStyle.BorderForeground(danger).Foreground(danger).Render(action + "失敗: " + msg)
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(subtle)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

func text(v gjson.Result) string {
	if !v.Exists() || v.Type == gjson.Null || v.String() == "" {
		return "-"
	}
	return v.String()
}

func isTruthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return v.Int() != 0
	default:
		return false
	}
}

var displayLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// formatTime 以本地時間顯示，無法解析時原樣輸出
func formatTime(v gjson.Result) string {
	if v.Type == gjson.Number {
		return time.UnixMilli(v.Int()).Local().Format("2006-01-02 15:04:05")
	}
	s := v.String()
	if s == "" {
		return "-"
	}
	for _, layout := range displayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Local().Format("2006-01-02 15:04:05")
		}
	}
	return s
}
