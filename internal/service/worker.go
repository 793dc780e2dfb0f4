package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"zai-console/config"
	"zai-console/internal/core"
	"zai-console/internal/database/fluentd/model"
	fluentdRepo "zai-console/internal/database/fluentd/repository"
	cErr "zai-console/internal/pkg/error"
	"zai-console/internal/telemetry"

	"go.uber.org/zap"
)

// UpstreamResponse Worker API 回應；Body 已解壓，狀態碼由呼叫端判斷
type UpstreamResponse struct {
	Route      core.WorkerRoute
	StatusCode int
	Body       []byte
}

func (r *UpstreamResponse) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// WorkerClient 所有 Worker API 呼叫的唯一出口
type WorkerClient struct {
	baseURL    string
	httpClient *http.Client
	trace      *telemetry.Trace
	metric     *telemetry.Metric
	logRepo    *fluentdRepo.LogRepository
	logger     *zap.Logger
}

func NewWorkerClient(
	conf *config.Configuration,
	httpClient *http.Client,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	logRepo *fluentdRepo.LogRepository,
	logger *zap.Logger,
) *WorkerClient {
	return &WorkerClient{
		baseURL:    conf.Worker.ResolveBaseURL(),
		httpClient: httpClient,
		trace:      trace,
		metric:     metric,
		logRepo:    logRepo,
		logger:     logger,
	}
}

func (w *WorkerClient) BaseURL() string {
	return w.baseURL
}

// ---- 讀取 ----

func (w *WorkerClient) ListUsers(ctx context.Context, adminKey string) (*UpstreamResponse, error) {
	return w.do(ctx, http.MethodGet, core.WorkerRouteUsersList, "", adminKey, nil)
}

func (w *WorkerClient) ListAccounts(ctx context.Context, adminKey string) (*UpstreamResponse, error) {
	return w.do(ctx, http.MethodGet, core.WorkerRouteAccountsList, "", adminKey, nil)
}

func (w *WorkerClient) Stats(ctx context.Context, adminKey string) (*UpstreamResponse, error) {
	return w.do(ctx, http.MethodGet, core.WorkerRouteStats, "", adminKey, nil)
}

func (w *WorkerClient) Logs(ctx context.Context, adminKey string) (*UpstreamResponse, error) {
	return w.do(ctx, http.MethodGet, core.WorkerRouteLogs, "", adminKey, nil)
}

func (w *WorkerClient) GetConfig(ctx context.Context, adminKey string) (*UpstreamResponse, error) {
	return w.do(ctx, http.MethodGet, core.WorkerRouteConfig, "", adminKey, nil)
}

// ---- 寫入 ----

func (w *WorkerClient) UpdateConfig(ctx context.Context, adminKey string, body []byte) (*UpstreamResponse, error) {
	return w.do(ctx, http.MethodPost, core.WorkerRouteConfig, "", adminKey, body)
}

func (w *WorkerClient) CreateUser(ctx context.Context, adminKey string, body []byte) (*UpstreamResponse, error) {
	return w.do(ctx, http.MethodPost, core.WorkerRouteUsersCreate, "", adminKey, body)
}

func (w *WorkerClient) DeleteUser(ctx context.Context, adminKey, id string) (*UpstreamResponse, error) {
	return w.do(ctx, http.MethodDelete, core.WorkerRouteUsersDelete, "/"+url.PathEscape(id), adminKey, nil)
}

func (w *WorkerClient) RefreshAccount(ctx context.Context, adminKey string, body []byte) (*UpstreamResponse, error) {
	return w.do(ctx, http.MethodPost, core.WorkerRouteAccountsRefresh, "", adminKey, body)
}

func (w *WorkerClient) DeleteAccount(ctx context.Context, adminKey, id string) (*UpstreamResponse, error) {
	return w.do(ctx, http.MethodDelete, core.WorkerRouteAccountsDelete, "/"+url.PathEscape(id), adminKey, nil)
}

func (w *WorkerClient) AddAccount(ctx context.Context, adminKey string, body []byte) (*UpstreamResponse, error) {
	return w.do(ctx, http.MethodPost, core.WorkerRouteAccountsAdd, "", adminKey, body)
}

func (w *WorkerClient) BrowserLoginAccount(ctx context.Context, adminKey string, body []byte) (*UpstreamResponse, error) {
	return w.do(ctx, http.MethodPost, core.WorkerRouteAccountsLogin, "", adminKey, body)
}

// Probe 不帶授權的 HEAD；有任何 HTTP 回應即回傳狀態碼
func (w *WorkerClient) Probe(ctx context.Context) (int, error) {
	ctx, span, end := w.trace.WithSpan(ctx, string(core.SpanUpstreamProbe))
	meta := core.TraceProbeMeta{URL: w.baseURL}
	var probeErr error
	defer func() {
		w.trace.ApplyTraceAttributes(span, meta)
		end(probeErr)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, w.baseURL, nil)
	if err != nil {
		probeErr = err
		return 0, cErr.InternalServer("create probe request failed").Wrap(err)
	}
	resp, err := w.httpClient.Do(req)
	if err != nil {
		probeErr = err
		return 0, cErr.ExternalRequestError("worker api unreachable").Wrap(err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	meta.StatusCode = resp.StatusCode
	meta.Reachable = true
	return resp.StatusCode, nil
}

func (w *WorkerClient) do(
	ctx context.Context,
	method string,
	route core.WorkerRoute,
	suffix string,
	adminKey string,
	body []byte,
) (*UpstreamResponse, error) {
	ctx, span, end := w.trace.WithSpan(ctx, string(core.SpanWorkerCall))
	start := time.Now()
	target := w.baseURL + string(route) + suffix
	meta := core.TraceUpstreamMeta{
		Route:  string(route),
		Method: method,
		URL:    target,
	}
	status := "error"
	var callErr error
	defer func() {
		elapsed := time.Since(start)
		meta.DurationMs = float64(elapsed.Microseconds()) / 1000
		w.trace.ApplyTraceAttributes(span, meta)
		w.metric.ObserveUpstream(route, status, elapsed.Seconds())
		w.logUpstream(ctx, meta, callErr)
		end(callErr)
	}()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		callErr = err
		return nil, cErr.InternalServer("create worker request failed").Wrap(err)
	}
	req.Header.Set("Authorization", "Bearer "+adminKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", acceptEncoding)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		callErr = err
		return nil, cErr.ExternalRequestError("worker api request failed").Wrap(err)
	}
	defer resp.Body.Close()

	status = strconv.Itoa(resp.StatusCode)
	meta.StatusCode = resp.StatusCode
	meta.Encoding = resp.Header.Get("Content-Encoding")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		callErr = err
		return nil, cErr.ExternalResponseFormatError("read worker response failed").Wrap(err)
	}
	decoded, err := decompressOnly(raw, resp.Header)
	if err != nil {
		callErr = err
		return nil, cErr.ExternalResponseFormatError("decompress worker response failed").Wrap(err)
	}
	meta.BodyBytes = len(decoded)

	return &UpstreamResponse{
		Route:      route,
		StatusCode: resp.StatusCode,
		Body:       decoded,
	}, nil
}

func (w *WorkerClient) logUpstream(ctx context.Context, meta core.TraceUpstreamMeta, callErr error) {
	fields := []zap.Field{
		zap.String("route", meta.Route),
		zap.String("method", meta.Method),
		zap.Int("status", meta.StatusCode),
		zap.Float64("latency_ms", meta.DurationMs),
	}
	if callErr != nil {
		w.logger.Warn("worker api call failed", append(fields, zap.Error(callErr))...)
	} else {
		w.logger.Debug("worker api call", fields...)
	}
	if w.logRepo == nil {
		return
	}
	rec := model.UpstreamLog{
		Route:      meta.Route,
		Method:     meta.Method,
		StatusCode: meta.StatusCode,
		BodyBytes:  meta.BodyBytes,
		LatencyMs:  meta.DurationMs,
	}
	if callErr != nil {
		rec.Error = callErr.Error()
	}
	if err := w.logRepo.LogUpstream(ctx, rec); err != nil {
		w.logger.Debug("ship upstream log failed", zap.Error(err))
	}
}
