package service

import (
	"context"
	"encoding/json"
	"time"

	"zai-console/internal/core"
	"zai-console/internal/dto"
	cErr "zai-console/internal/pkg/error"
	"zai-console/internal/telemetry"
	"zai-console/utils/apikey"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type DashboardService struct {
	worker *WorkerClient
	trace  *telemetry.Trace
	logger *zap.Logger
	now    func() time.Time
}

func NewDashboardService(worker *WorkerClient, trace *telemetry.Trace, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		worker: worker,
		trace:  trace,
		logger: logger,
		now:    time.Now,
	}
}

// Load 驗證 admin key 並一次取回後台所需全部資料
func (s *DashboardService) Load(ctx context.Context, adminKey string) (body []byte, err error) {
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanDashboardLoad))
	meta := core.TraceDashboardMeta{KeyMasked: apikey.MaskAPIKey(adminKey), Status: "ok"}
	defer func() {
		if err != nil {
			meta.Status = err.Error()
		}
		s.trace.ApplyTraceAttributes(span, meta)
		end(err)
	}()

	if !apikey.HasAdminPrefix(adminKey) {
		return nil, cErr.InvalidAdminKey("invalid admin key")
	}

	// 五個請求全部跑完才回傳，不互相取消
	var (
		g                                   errgroup.Group
		users, accounts, stats, logs, conf *UpstreamResponse
	)
	g.Go(func() (e error) { users, e = s.worker.ListUsers(ctx, adminKey); return })
	g.Go(func() (e error) { accounts, e = s.worker.ListAccounts(ctx, adminKey); return })
	g.Go(func() (e error) { stats, e = s.worker.Stats(ctx, adminKey); return })
	g.Go(func() (e error) { logs, e = s.worker.Logs(ctx, adminKey); return })
	g.Go(func() (e error) { conf, e = s.worker.GetConfig(ctx, adminKey); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	meta.UsersStatus = users.StatusCode
	if !users.OK() {
		return nil, cErr.UpstreamAuthFailed("authentication failed")
	}

	for _, r := range []*UpstreamResponse{users, accounts, stats, logs, conf} {
		if !gjson.ValidBytes(r.Body) {
			return nil, cErr.ExternalResponseFormatError("invalid json from " + string(r.Route))
		}
	}

	payload, err := s.compose(users.Body, accounts.Body, stats.Body, logs.Body, conf.Body)
	if err != nil {
		return nil, err
	}
	meta.UserCount = len(payload.Users)
	meta.AccountCount = len(payload.Accounts)
	meta.LogCount = len(payload.RecentLogs)
	meta.ExpiringSoon = int(gjson.GetBytes(payload.Stats, "accounts.expiring_soon").Int())
	meta.UpstreamLogSize = int(gjson.GetBytes(logs.Body, "logs.#").Int())

	out, err := json.Marshal(payload)
	if err != nil {
		return nil, cErr.InternalServer("encode dashboard failed").Wrap(err)
	}
	return out, nil
}

func (s *DashboardService) compose(usersBody, accountsBody, statsBody, logsBody, configBody []byte) (*dto.DashboardPayload, error) {
	now := s.now()

	userItems, err := collection(usersBody, "users")
	if err != nil {
		return nil, err
	}
	users := make([]json.RawMessage, 0, len(userItems))
	for _, u := range userItems {
		masked, err := SanitizeUser(u)
		if err != nil {
			return nil, cErr.ExternalResponseFormatError("mask user api key failed").Wrap(err)
		}
		users = append(users, masked)
	}

	accountItems, err := collection(accountsBody, "accounts")
	if err != nil {
		return nil, err
	}
	accounts := make([]dto.SanitizedAccount, 0, len(accountItems))
	for _, a := range accountItems {
		accounts = append(accounts, SanitizeAccount(a, now))
	}

	stats, err := mergeExpiringSoon(statsBody, ExpiringSoon(accounts))
	if err != nil {
		return nil, err
	}

	logItems, err := collection(logsBody, "logs")
	if err != nil {
		return nil, err
	}
	if len(logItems) > core.RecentLogLimit {
		logItems = logItems[:core.RecentLogLimit]
	}
	recent := make([]json.RawMessage, 0, len(logItems))
	for _, l := range logItems {
		recent = append(recent, json.RawMessage(l.Raw))
	}

	return &dto.DashboardPayload{
		Users:      users,
		Accounts:   accounts,
		Stats:      stats,
		RecentLogs: recent,
		Config:     json.RawMessage(configBody),
	}, nil
}

// collection 取出 body 內的陣列欄位；缺少或 null 視為空陣列
func collection(body []byte, field string) ([]gjson.Result, error) {
	v := gjson.GetBytes(body, field)
	if v.Type == gjson.Null {
		return nil, nil
	}
	if !v.IsArray() {
		return nil, cErr.ExternalResponseFormatError(field + " is not an array")
	}
	return v.Array(), nil
}

// mergeExpiringSoon {...stats, accounts: {...stats.accounts, expiring_soon: n}}
func mergeExpiringSoon(statsBody []byte, n int) (json.RawMessage, error) {
	out := statsBody
	if !gjson.ParseBytes(statsBody).IsObject() {
		out = []byte(`{}`)
	}
	var err error
	if gjson.GetBytes(out, "accounts").IsObject() {
		out, err = sjson.SetBytes(out, "accounts.expiring_soon", n)
	} else {
		out, err = sjson.SetBytes(out, "accounts", map[string]int{"expiring_soon": n})
	}
	if err != nil {
		return nil, cErr.ExternalResponseFormatError("merge stats failed").Wrap(err)
	}
	return out, nil
}
