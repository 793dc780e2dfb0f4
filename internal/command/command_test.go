package command

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"zai-console/config"
	"zai-console/internal/console"
	commandHandler "zai-console/internal/command/handler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAdminKey = "admin-sk-ABCDEFGHIJKLMNOPQR"

type fakeBFF struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeBFF) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	switch {
	case r.URL.Path == "/api/admin/auth":
		b, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(b), testAdminKey) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"code":40102,"description":"authentication failed"}`)
			return
		}
		_, _ = io.WriteString(w, `{"users":[],"accounts":[],"stats":{"users":{"total":4}},"recent_logs":[],"config":{}}`)
	case r.URL.Path == "/api/admin/data":
		if r.Header.Get("Authorization") != "Bearer "+testAdminKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"code":40100,"description":"unauthorized"}`)
			return
		}
		_, _ = io.WriteString(w, `{"users":[{"id":9,"name":"zed","api_key":"sk-masked"}],"accounts":[],"stats":{},"recent_logs":[],"config":{}}`)
	case r.URL.Path == "/api/admin/users/create":
		_, _ = io.WriteString(w, `{"success":true,"api_key":"sk-brand-new"}`)
	case strings.HasPrefix(r.URL.Path, "/api/admin/users/"):
		_, _ = io.WriteString(w, `{"success":false,"message":"user not found"}`)
	default:
		_, _ = io.WriteString(w, `{"success":true}`)
	}
}

func (f *fakeBFF) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type harness struct {
	bff     *fakeBFF
	session *console.Session
	newCmd  func() (*Command, func(), error)
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	bff := &fakeBFF{}
	srv := httptest.NewServer(bff)
	t.Cleanup(srv.Close)

	conf := &config.Configuration{}
	conf.Console.ServerURL = srv.URL
	conf.Console.SessionFile = filepath.Join(t.TempDir(), "session.json")
	session := console.NewSession(conf)
	handler := commandHandler.NewConsoleHandler(zap.NewNop(), session, console.NewClient(conf))

	return &harness{
		bff:     bff,
		session: session,
		newCmd: func() (*Command, func(), error) {
			return NewCommand(handler), func() {}, nil
		},
	}
}

func (h *harness) exec(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newConsoleCommand(h.newCmd)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoginRejectsBadPrefixWithoutRequest(t *testing.T) {
	h := newHarness(t)

	out, err := h.exec(t, "", "login", "--key", "sk-wrong")
	require.NoError(t, err)
	assert.Contains(t, out, "admin-sk-")
	assert.Empty(t, h.bff.called())

	_, err = h.session.Load()
	assert.ErrorIs(t, err, console.ErrNoSession)
}

func TestLoginSavesSessionAndRendersOverview(t *testing.T) {
	h := newHarness(t)

	out, err := h.exec(t, "", "login", "--key", testAdminKey)
	require.NoError(t, err)
	assert.Contains(t, out, "共 4 個")

	key, err := h.session.Load()
	require.NoError(t, err)
	assert.Equal(t, testAdminKey, key)

	out, err = h.exec(t, "", "users")
	require.NoError(t, err)
	assert.Contains(t, out, "zed")

	_, err = h.exec(t, "", "logout")
	require.NoError(t, err)
	_, err = h.exec(t, "", "users")
	assert.ErrorIs(t, err, console.ErrNoSession)
}

func TestLoginRejectedByServer(t *testing.T) {
	h := newHarness(t)

	out, err := h.exec(t, "", "login", "--key", "admin-sk-unknown")
	require.NoError(t, err)
	assert.Contains(t, out, "認證失敗")
	_, err = h.session.Load()
	assert.ErrorIs(t, err, console.ErrNoSession)
}

func TestRejectedSessionIsCleared(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.session.Save("admin-sk-stale"))

	_, err := h.exec(t, "", "overview")
	require.Error(t, err)
	_, err = h.session.Load()
	assert.ErrorIs(t, err, console.ErrNoSession)
}

func TestDeleteUserAsksForConfirmation(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.session.Save(testAdminKey))

	out, err := h.exec(t, "n\n", "users", "delete", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "已取消")
	assert.Empty(t, h.bff.called())

	out, err = h.exec(t, "y\n", "users", "delete", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "刪除使用者失敗: user not found")
	assert.Equal(t, []string{"DELETE /api/admin/users/42"}, h.bff.called())
}

func TestCreateUserShowsKeyOnce(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.session.Save(testAdminKey))

	out, err := h.exec(t, "", "users", "create")
	require.NoError(t, err)
	assert.Contains(t, out, "請輸入使用者名稱")
	assert.Empty(t, h.bff.called())

	out, err = h.exec(t, "", "users", "create", "--name", "bob", "--refresh")
	require.NoError(t, err)
	assert.Contains(t, out, "API Key: sk-brand-new")
	assert.Equal(t, []string{"POST /api/admin/users/create", "GET /api/admin/data"}, h.bff.called())
}

func TestAccountAndConfigActions(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.session.Save(testAdminKey))

	_, err := h.exec(t, "", "accounts", "refresh", "abc", "--yes")
	assert.Error(t, err)

	for _, args := range [][]string{
		{"accounts", "refresh", "3", "--yes"},
		{"accounts", "delete", "3", "-y"},
		{"accounts", "add", "--name", "n", "--token", "t"},
		{"accounts", "login", "--name", "n"},
		{"config", "set", "auto_refresh_enabled", "false"},
	} {
		out, err := h.exec(t, "", args...)
		require.NoError(t, err, args)
		assert.Contains(t, out, "成功", args)
	}

	assert.Equal(t, []string{
		"POST /api/admin/accounts/refresh",
		"DELETE /api/admin/accounts/3",
		"POST /api/admin/accounts/add",
		"POST /api/admin/accounts/login",
		"POST /api/admin/config",
	}, h.bff.called())
}
