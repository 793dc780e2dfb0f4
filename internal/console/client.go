package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"zai-console/config"
	"zai-console/internal/dto"

	"github.com/tidwall/gjson"
)

const clientTimeout = 60 * time.Second

// APIError BFF 回傳的錯誤信封
type APIError struct {
	Status      int
	Code        int
	Message     string
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%d %s", e.Status, e.Description)
	}
	return fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status))
}

func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// Client 呼叫本服務的 /api/admin 端點
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(conf *config.Configuration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(conf.Console.ResolveServerURL(conf.App), "/"),
		httpClient: &http.Client{Timeout: clientTimeout},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Auth(ctx context.Context, adminKey string) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/api/admin/auth", "", dto.AuthRequest{AdminKey: adminKey})
}

func (c *Client) Dashboard(ctx context.Context, adminKey string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/api/admin/data", adminKey, nil)
}

func (c *Client) CreateUser(ctx context.Context, adminKey string, req dto.CreateUserRequest) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/api/admin/users/create", adminKey, req)
}

func (c *Client) DeleteUser(ctx context.Context, adminKey, id string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, "/api/admin/users/"+url.PathEscape(id), adminKey, nil)
}

func (c *Client) RefreshAccount(ctx context.Context, adminKey string, req dto.RefreshAccountRequest) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/api/admin/accounts/refresh", adminKey, req)
}

func (c *Client) DeleteAccount(ctx context.Context, adminKey, id string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, "/api/admin/accounts/"+url.PathEscape(id), adminKey, nil)
}

func (c *Client) AddAccount(ctx context.Context, adminKey string, req dto.AddAccountRequest) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/api/admin/accounts/add", adminKey, req)
}

func (c *Client) BrowserLogin(ctx context.Context, adminKey string, req dto.BrowserLoginRequest) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/api/admin/accounts/login", adminKey, req)
}

func (c *Client) UpdateConfig(ctx context.Context, adminKey string, req dto.UpdateConfigRequest) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/api/admin/config", adminKey, req)
}

func (c *Client) do(ctx context.Context, method, path, adminKey string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if adminKey != "" {
		req.Header.Set("Authorization", "Bearer "+adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, envelopeError(resp.StatusCode, body)
	}
	return body, nil
}

func envelopeError(status int, body []byte) *APIError {
	e := &APIError{Status: status}
	if !gjson.ValidBytes(body) {
		return e
	}
	e.Code = int(gjson.GetBytes(body, "code").Int())
	e.Message = gjson.GetBytes(body, "message").String()
	e.Description = gjson.GetBytes(body, "description").String()
	return e
}

// ParseConfigValue 可解析為 JSON 就用 JSON，否則當字串
func ParseConfigValue(raw string) json.RawMessage {
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" && gjson.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	b, _ := json.Marshal(raw)
	return b
}

// ParseAccountID 帳號 ID 必須是整數
func ParseAccountID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid account id %q", raw)
	}
	return id, nil
}
