package service

import (
	"context"
	"net/http"
	"testing"

	"zai-console/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestPassthrough(t *testing.T) (*stubWorker, *PassthroughService, *observer.ObservedLogs) {
	t.Helper()
	stub, wc := startStub(t)
	core, logs := observer.New(zap.WarnLevel)
	return stub, NewPassthroughService(wc, &telemetry.Trace{}, zap.New(core)), logs
}

func TestPassthroughDeleteUserRelaysBody(t *testing.T) {
	stub, svc, _ := newTestPassthrough(t)
	stub.handle("/admin/users/delete/42", http.StatusOK, `{"success":true}`)

	body, err := svc.DeleteUser(context.Background(), "anything", "42")
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true}`, string(body))
	assert.Equal(t, 1, stub.count("DELETE /admin/users/delete/42"))
	assert.Equal(t, []string{"Bearer anything"}, stub.auth)
}

func TestPassthroughRelaysUpstreamFailureVerbatim(t *testing.T) {
	stub, svc, logs := newTestPassthrough(t)
	stub.handle("/admin/accounts/refresh", http.StatusBadRequest, `{"success":false,"message":"token revoked"}`)

	body, err := svc.RefreshAccount(context.Background(), "admin-sk-x", []byte(`{"account_id":3}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"token revoked"}`, string(body))
	assert.Equal(t, `{"account_id":3}`, string(stub.bodies["POST /admin/accounts/refresh"]))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "token revoked", logs.All()[0].ContextMap()["message"])
}

func TestPassthroughRejectsInvalidRequestBody(t *testing.T) {
	stub, svc, _ := newTestPassthrough(t)

	_, err := svc.UpdateConfig(context.Background(), "admin-sk-x", []byte(`{key:`))
	require.Error(t, err)
	_, err = svc.CreateUser(context.Background(), "admin-sk-x", nil)
	require.Error(t, err)
	assert.Equal(t, 0, stub.total())
}

func TestPassthroughRejectsInvalidUpstreamBody(t *testing.T) {
	stub, svc, _ := newTestPassthrough(t)
	stub.handle("/admin/accounts/add", http.StatusBadGateway, `Bad Gateway`)

	_, err := svc.AddAccount(context.Background(), "admin-sk-x", []byte(`{"name":"a","token":"t"}`))
	require.Error(t, err)
}

func TestPassthroughSupplementalRoutes(t *testing.T) {
	stub, svc, _ := newTestPassthrough(t)
	stub.handle("/admin/accounts/login", http.StatusOK, `{"success":true,"message":"started"}`)
	stub.handle("/admin/accounts/delete/9", http.StatusOK, `{"success":true}`)
	stub.handle("/admin/config", http.StatusOK, `{"success":true}`)

	_, err := svc.BrowserLoginAccount(context.Background(), "admin-sk-x", []byte(`{"name":"b"}`))
	require.NoError(t, err)
	_, err = svc.DeleteAccount(context.Background(), "admin-sk-x", "9")
	require.NoError(t, err)
	_, err = svc.UpdateConfig(context.Background(), "admin-sk-x", []byte(`{"key":"auto_refresh_enabled","value":false}`))
	require.NoError(t, err)

	assert.Equal(t, 1, stub.count("POST /admin/accounts/login"))
	assert.Equal(t, 1, stub.count("DELETE /admin/accounts/delete/9"))
	assert.Equal(t, 1, stub.count("POST /admin/config"))
}
