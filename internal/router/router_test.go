package router

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"zai-console/config"
	"zai-console/internal/database/client"
	fluentdRepo "zai-console/internal/database/fluentd/repository"
	"zai-console/internal/handler"
	"zai-console/internal/middleware"
	cErr "zai-console/internal/pkg/error"
	"zai-console/internal/service"
	"zai-console/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const testAdminKey = "admin-sk-ABCDEFGHIJKLMNOPQR"

// fakeWorker 依路徑回傳固定內容並記錄呼叫
type fakeWorker struct {
	mu     sync.Mutex
	routes map[string]func(w http.ResponseWriter)
	calls  []string
	auth   []string
}

func (f *fakeWorker) set(path string, status int, body string) {
	f.routes[path] = func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func (f *fakeWorker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls = append(f.calls, r.Method+" "+r.URL.EscapedPath())
	f.auth = append(f.auth, r.Header.Get("Authorization"))
	h, ok := f.routes[r.URL.EscapedPath()]
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h(w)
}

func (f *fakeWorker) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func newTestEngine(t *testing.T) (*fakeWorker, *gin.Engine) {
	t.Helper()
	worker := &fakeWorker{routes: map[string]func(http.ResponseWriter){}}
	srv := httptest.NewServer(worker)
	t.Cleanup(srv.Close)

	t.Setenv(config.WorkerAPIURLEnv, "")
	conf := &config.Configuration{}
	conf.App.Env = "test"
	conf.App.Name = "zai-console"
	conf.Worker.BaseURL = srv.URL

	logger := zap.NewNop()
	trace, cleanup, err := telemetry.NewTrace(conf)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	metric := telemetry.NewMetric(conf)
	repo := fluentdRepo.NewLogRepository(conf, &client.NoopClient{})

	wc := service.NewWorkerClient(conf, &http.Client{Timeout: 5 * time.Second}, trace, metric, repo, logger)
	dashboard := service.NewDashboardService(wc, trace, logger)
	passthrough := service.NewPassthroughService(wc, trace, logger)
	health := service.NewHealthService()
	health.SetReady(true)

	engine := NewRouter(
		conf,
		middleware.NewTraceEntry(trace, metric, conf),
		middleware.NewRecovery(logger, trace, conf, repo),
		middleware.NewCors(trace, conf),
		middleware.NewLogger(logger, trace, conf, repo),
		middleware.NewResponse(logger, trace, conf, repo),
		NewAdminRouter(
			handler.NewAdminHandler(trace, dashboard),
			handler.NewAdminUserHandler(trace, passthrough),
			handler.NewAdminAccountHandler(trace, passthrough),
			handler.NewAdminConfigHandler(trace, passthrough),
			middleware.NewBearer(logger, trace),
		),
		NewHealthRouter(handler.NewHealthHandler(health)),
	)
	return worker, engine
}

func seedDashboard(worker *fakeWorker) {
	soon := time.Now().UTC().Add(30 * time.Hour).Format(time.RFC3339)
	worker.set("/admin/users/list", http.StatusOK,
		`{"users":[{"id":7,"name":"alice","api_key":"sk-ABCDEFGHIJKLMNOPQRST"}]}`)
	worker.set("/admin/accounts/list", http.StatusOK, fmt.Sprintf(`{"accounts":[
		{"id":1,"name":"a1","token":"secret-token","discord_token":"secret-discord","expires_at":%q}
	]}`, soon))
	worker.set("/admin/stats", http.StatusOK, `{"accounts":{"total":1}}`)
	logs := make([]string, 60)
	for i := range logs {
		logs[i] = fmt.Sprintf(`{"id":%d}`, i)
	}
	worker.set("/admin/logs", http.StatusOK, `{"logs":[`+strings.Join(logs, ",")+`]}`)
	worker.set("/admin/config", http.StatusOK, `{"version":"2.0.0"}`)
}

func do(engine *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthReturnsSanitizedDashboard(t *testing.T) {
	worker, engine := newTestEngine(t)
	seedDashboard(worker)

	w := do(engine, http.MethodPost, "/api/admin/auth", `{"admin_key":"`+testAdminKey+`"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Equal(t, "sk-ABCDEFG...OPQRST", gjson.Get(body, "users.0.api_key").String())
	assert.Equal(t, int64(1), gjson.Get(body, "stats.accounts.expiring_soon").Int())
	assert.Equal(t, int64(1), gjson.Get(body, "stats.accounts.total").Int())
	assert.Equal(t, int64(50), gjson.Get(body, "recent_logs.#").Int())
	assert.Equal(t, "valid", gjson.Get(body, "accounts.0.discord_token_status").String())
	assert.False(t, gjson.Get(body, "accounts.0.token").Exists())
	assert.False(t, gjson.Get(body, "accounts.0.discord_token").Exists())
	assert.NotContains(t, body, "secret-token")
	assert.NotContains(t, body, "secret-discord")
	assert.Equal(t, "2.0.0", gjson.Get(body, "config.version").String())

	assert.Len(t, worker.called(), 5)
	for _, a := range worker.auth {
		assert.Equal(t, "Bearer "+testAdminKey, a)
	}
}

func TestAuthRejectsBadPrefixWithoutUpstreamCalls(t *testing.T) {
	worker, engine := newTestEngine(t)

	w := do(engine, http.MethodPost, "/api/admin/auth", `{"admin_key":"sk-not-admin"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, worker.called())

	body := w.Body.String()
	assert.Equal(t, int64(cErr.INVALID_ADMIN_KEY), gjson.Get(body, "code").Int())
	assert.Equal(t, gjson.Null, gjson.Get(body, "data").Type)
	assert.True(t, gjson.Get(body, "requestID").Exists())
	assert.True(t, gjson.Get(body, "message").Exists())
	assert.True(t, gjson.Get(body, "description").Exists())
}

func TestAuthMissingKeyIsUnauthorized(t *testing.T) {
	worker, engine := newTestEngine(t)

	for _, body := range []string{`{}`, `{"admin_key":null}`, `{"admin_key":""}`, `{"admin_key":0}`, `{"admin_key":false}`} {
		w := do(engine, http.MethodPost, "/api/admin/auth", body, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, body)
	}
	assert.Empty(t, worker.called())
}

func TestAuthUnparseableBodyIsServerError(t *testing.T) {
	worker, engine := newTestEngine(t)

	w := do(engine, http.MethodPost, "/api/admin/auth", `{not json`, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "server error", gjson.Get(w.Body.String(), "description").String())
	assert.Empty(t, worker.called())
}

func TestAuthUpstreamRejectsKey(t *testing.T) {
	worker, engine := newTestEngine(t)
	seedDashboard(worker)
	worker.set("/admin/users/list", http.StatusUnauthorized, `{"error":"unauthorized"}`)

	w := do(engine, http.MethodPost, "/api/admin/auth", `{"admin_key":"`+testAdminKey+`"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "authentication failed", gjson.Get(w.Body.String(), "description").String())
}

func TestAuthUpstreamUnreachableIsServerError(t *testing.T) {
	worker, engine := newTestEngine(t)
	seedDashboard(worker)
	worker.set("/admin/logs", http.StatusOK, `not json`)

	w := do(engine, http.MethodPost, "/api/admin/auth", `{"admin_key":"`+testAdminKey+`"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "server error", gjson.Get(w.Body.String(), "description").String())
	assert.NotContains(t, w.Body.String(), "invalid json")
}

func TestDataRequiresBearer(t *testing.T) {
	worker, engine := newTestEngine(t)
	seedDashboard(worker)

	w := do(engine, http.MethodGet, "/api/admin/data", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, worker.called())

	w = do(engine, http.MethodGet, "/api/admin/data", "", map[string]string{"Authorization": "Bearer " + testAdminKey})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), gjson.Get(w.Body.String(), "users.#").Int())
}

func TestDeleteUserRelaysVerbatim(t *testing.T) {
	worker, engine := newTestEngine(t)
	worker.set("/admin/users/delete/42", http.StatusNotFound, `{"success":false,"message":"user not found"}`)

	w := do(engine, http.MethodDelete, "/api/admin/users/42", "", map[string]string{"Authorization": "Bearer " + testAdminKey})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"user not found"}`, w.Body.String())
	assert.Equal(t, []string{"DELETE /admin/users/delete/42"}, worker.called())
}

func TestCreateUserForwardsBody(t *testing.T) {
	worker, engine := newTestEngine(t)
	worker.set("/admin/users/create", http.StatusOK, `{"success":true,"api_key":"sk-full-key-shown-once"}`)

	w := do(engine, http.MethodPost, "/api/admin/users/create", `{"name":"bob","rate_limit":10}`,
		map[string]string{"Authorization": "Bearer " + testAdminKey})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sk-full-key-shown-once", gjson.Get(w.Body.String(), "api_key").String())
	assert.Equal(t, []string{"POST /admin/users/create"}, worker.called())
}

func TestAccountRoutes(t *testing.T) {
	worker, engine := newTestEngine(t)
	worker.set("/admin/accounts/refresh", http.StatusOK, `{"success":true}`)
	worker.set("/admin/accounts/delete/3", http.StatusOK, `{"success":true}`)
	worker.set("/admin/accounts/add", http.StatusOK, `{"success":true}`)
	worker.set("/admin/accounts/login", http.StatusOK, `{"success":true,"message":"started"}`)
	auth := map[string]string{"Authorization": "Bearer " + testAdminKey}

	assert.Equal(t, http.StatusOK, do(engine, http.MethodPost, "/api/admin/accounts/refresh", `{"account_id":3}`, auth).Code)
	assert.Equal(t, http.StatusOK, do(engine, http.MethodDelete, "/api/admin/accounts/3", "", auth).Code)
	assert.Equal(t, http.StatusOK, do(engine, http.MethodPost, "/api/admin/accounts/add", `{"name":"n","token":"t"}`, auth).Code)
	assert.Equal(t, http.StatusOK, do(engine, http.MethodPost, "/api/admin/accounts/login", `{"name":"n"}`, auth).Code)

	assert.Equal(t, []string{
		"POST /admin/accounts/refresh",
		"DELETE /admin/accounts/delete/3",
		"POST /admin/accounts/add",
		"POST /admin/accounts/login",
	}, worker.called())
}

func TestUpdateConfigRejectsInvalidBody(t *testing.T) {
	worker, engine := newTestEngine(t)

	w := do(engine, http.MethodPost, "/api/admin/config", `key=value`, map[string]string{"Authorization": "Bearer " + testAdminKey})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, worker.called())
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	_, engine := newTestEngine(t)

	w := do(engine, http.MethodGet, "/api/admin/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, int64(cErr.NOT_FOUND), gjson.Get(w.Body.String(), "code").Int())
}

func TestHealthRoutes(t *testing.T) {
	_, engine := newTestEngine(t)

	assert.Equal(t, http.StatusOK, do(engine, http.MethodGet, "/health/liveness", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(engine, http.MethodGet, "/health/readiness", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(engine, http.MethodGet, "/health-check", "", nil).Code)
}
