package console

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"zai-console/config"
	"zai-console/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	conf := &config.Configuration{}
	conf.Console.ServerURL = srv.URL + "/"
	return NewClient(conf)
}

func TestClientAuthSendsKeyInBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/auth", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		b, _ := io.ReadAll(r.Body)
		assert.Equal(t, "admin-sk-abc", gjson.GetBytes(b, "admin_key").String())
		_, _ = io.WriteString(w, `{"users":[]}`)
	})

	body, err := c.Auth(context.Background(), "admin-sk-abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":[]}`, string(body))
}

func TestClientBearerAndEnvelopeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer admin-sk-abc", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"requestID":"r","code":40102,"data":null,"message":"unauthorized","description":"authentication failed"}`)
	})

	_, err := c.Dashboard(context.Background(), "admin-sk-abc")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Unauthorized())
	assert.Equal(t, 40102, apiErr.Code)
	assert.Equal(t, "401 authentication failed", apiErr.Error())
}

func TestClientActionPaths(t *testing.T) {
	var got []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method+" "+r.URL.EscapedPath())
		_, _ = io.WriteString(w, `{"success":true}`)
	})
	ctx := context.Background()

	_, err := c.CreateUser(ctx, "k", dto.CreateUserRequest{Name: "a", RateLimit: 1})
	require.NoError(t, err)
	_, err = c.DeleteUser(ctx, "k", "42")
	require.NoError(t, err)
	_, err = c.RefreshAccount(ctx, "k", dto.RefreshAccountRequest{AccountID: 3})
	require.NoError(t, err)
	_, err = c.DeleteAccount(ctx, "k", "3")
	require.NoError(t, err)
	_, err = c.AddAccount(ctx, "k", dto.AddAccountRequest{Name: "n", Token: "t"})
	require.NoError(t, err)
	_, err = c.BrowserLogin(ctx, "k", dto.BrowserLoginRequest{Name: "n"})
	require.NoError(t, err)
	_, err = c.UpdateConfig(ctx, "k", dto.UpdateConfigRequest{Key: "x", Value: ParseConfigValue("1")})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"POST /api/admin/users/create",
		"DELETE /api/admin/users/42",
		"POST /api/admin/accounts/refresh",
		"DELETE /api/admin/accounts/3",
		"POST /api/admin/accounts/add",
		"POST /api/admin/accounts/login",
		"POST /api/admin/config",
	}, got)
}

func TestParseConfigValue(t *testing.T) {
	assert.Equal(t, `true`, string(ParseConfigValue("true")))
	assert.Equal(t, `30`, string(ParseConfigValue(" 30 ")))
	assert.Equal(t, `{"a":1}`, string(ParseConfigValue(`{"a":1}`)))
	assert.Equal(t, `"glm-4.6"`, string(ParseConfigValue("glm-4.6")))
	assert.Equal(t, `""`, string(ParseConfigValue("")))
}

func TestParseAccountID(t *testing.T) {
	id, err := ParseAccountID("12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	_, err = ParseAccountID("abc")
	assert.Error(t, err)
}
