package core

// AdminKeyPrefix 管理員密鑰固定前綴
const AdminKeyPrefix = "admin-sk-"

const (
	// 聚合回應保留的最新日誌筆數
	RecentLogLimit = 50
	// expires_in_hours 低於此值視為即將過期
	ExpiringSoonHours = 48
)

// TokenStatus 帳號 Discord token 狀態（由 BFF 計算，不落地）
type TokenStatus string

const (
	TokenStatusValid   TokenStatus = "valid"
	TokenStatusExpired TokenStatus = "expired"
	TokenStatusMissing TokenStatus = "missing"
)

// WorkerRoute Worker API 路由（亦作為 metric / trace 標籤）
type WorkerRoute string

const (
	WorkerRouteUsersList       WorkerRoute = "/admin/users/list"
	WorkerRouteUsersCreate     WorkerRoute = "/admin/users/create"
	WorkerRouteUsersDelete     WorkerRoute = "/admin/users/delete"
	WorkerRouteAccountsList    WorkerRoute = "/admin/accounts/list"
	WorkerRouteAccountsRefresh WorkerRoute = "/admin/accounts/refresh"
	WorkerRouteAccountsDelete  WorkerRoute = "/admin/accounts/delete"
	WorkerRouteAccountsAdd     WorkerRoute = "/admin/accounts/add"
	WorkerRouteAccountsLogin   WorkerRoute = "/admin/accounts/login"
	WorkerRouteStats           WorkerRoute = "/admin/stats"
	WorkerRouteLogs            WorkerRoute = "/admin/logs"
	WorkerRouteConfig          WorkerRoute = "/admin/config"
)

// Gin context keys
const (
	ContextAdminKey = "adminKey"
)
