package service

import (
	"context"
	"net/http"

	"zai-console/internal/core"
	cErr "zai-console/internal/pkg/error"
	"zai-console/internal/telemetry"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// PassthroughService 寫入類操作：原樣轉送到 Worker API，原樣回傳 JSON
// 上游的 HTTP 狀態不影響回應，成敗由 body 的 success/message 表達
type PassthroughService struct {
	worker *WorkerClient
	trace  *telemetry.Trace
	logger *zap.Logger
}

func NewPassthroughService(worker *WorkerClient, trace *telemetry.Trace, logger *zap.Logger) *PassthroughService {
	return &PassthroughService{worker: worker, trace: trace, logger: logger}
}

func (s *PassthroughService) CreateUser(ctx context.Context, adminKey string, body []byte) ([]byte, error) {
	return s.relayWithBody(ctx, core.WorkerRouteUsersCreate, body, func(ctx context.Context) (*UpstreamResponse, error) {
		return s.worker.CreateUser(ctx, adminKey, body)
	})
}

func (s *PassthroughService) DeleteUser(ctx context.Context, adminKey, id string) ([]byte, error) {
	meta := core.TracePassthroughMeta{Route: string(core.WorkerRouteUsersDelete), Method: http.MethodDelete, TargetID: id}
	return s.relay(ctx, meta, func(ctx context.Context) (*UpstreamResponse, error) {
		return s.worker.DeleteUser(ctx, adminKey, id)
	})
}

func (s *PassthroughService) RefreshAccount(ctx context.Context, adminKey string, body []byte) ([]byte, error) {
	return s.relayWithBody(ctx, core.WorkerRouteAccountsRefresh, body, func(ctx context.Context) (*UpstreamResponse, error) {
		return s.worker.RefreshAccount(ctx, adminKey, body)
	})
}

func (s *PassthroughService) DeleteAccount(ctx context.Context, adminKey, id string) ([]byte, error) {
	meta := core.TracePassthroughMeta{Route: string(core.WorkerRouteAccountsDelete), Method: http.MethodDelete, TargetID: id}
	return s.relay(ctx, meta, func(ctx context.Context) (*UpstreamResponse, error) {
		return s.worker.DeleteAccount(ctx, adminKey, id)
	})
}

func (s *PassthroughService) UpdateConfig(ctx context.Context, adminKey string, body []byte) ([]byte, error) {
	return s.relayWithBody(ctx, core.WorkerRouteConfig, body, func(ctx context.Context) (*UpstreamResponse, error) {
		return s.worker.UpdateConfig(ctx, adminKey, body)
	})
}

func (s *PassthroughService) AddAccount(ctx context.Context, adminKey string, body []byte) ([]byte, error) {
	return s.relayWithBody(ctx, core.WorkerRouteAccountsAdd, body, func(ctx context.Context) (*UpstreamResponse, error) {
		return s.worker.AddAccount(ctx, adminKey, body)
	})
}

func (s *PassthroughService) BrowserLoginAccount(ctx context.Context, adminKey string, body []byte) ([]byte, error) {
	return s.relayWithBody(ctx, core.WorkerRouteAccountsLogin, body, func(ctx context.Context) (*UpstreamResponse, error) {
		return s.worker.BrowserLoginAccount(ctx, adminKey, body)
	})
}

type upstreamCall func(ctx context.Context) (*UpstreamResponse, error)

// 送出前 body 必須是合法 JSON
func (s *PassthroughService) relayWithBody(ctx context.Context, route core.WorkerRoute, body []byte, call upstreamCall) ([]byte, error) {
	if !gjson.ValidBytes(body) {
		return nil, cErr.BadRequestBody("request body is not valid json")
	}
	return s.relay(ctx, core.TracePassthroughMeta{Route: string(route), Method: http.MethodPost}, call)
}

func (s *PassthroughService) relay(ctx context.Context, meta core.TracePassthroughMeta, call upstreamCall) (body []byte, err error) {
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanPassthrough))
	defer func() {
		s.trace.ApplyTraceAttributes(span, meta)
		end(err)
	}()

	resp, err := call(ctx)
	if err != nil {
		return nil, err
	}
	meta.UpstreamStatus = resp.StatusCode
	if !gjson.ValidBytes(resp.Body) {
		return nil, cErr.ExternalResponseFormatError("invalid json from " + string(resp.Route))
	}

	if success := gjson.GetBytes(resp.Body, "success"); success.Exists() {
		meta.Success = success.String()
		if success.Type == gjson.False {
			meta.Message = gjson.GetBytes(resp.Body, "message").String()
			s.logger.Warn("worker api reported failure",
				zap.String("route", meta.Route),
				zap.String("target_id", meta.TargetID),
				zap.Int("upstream_status", resp.StatusCode),
				zap.String("message", meta.Message),
			)
		}
	}
	return resp.Body, nil
}
