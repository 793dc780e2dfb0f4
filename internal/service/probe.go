package service

import (
	"context"
	"time"

	"zai-console/internal/telemetry"

	"go.uber.org/zap"
)

const probeTimeout = 10 * time.Second

// UpstreamProbe 定期確認 Worker API 是否可連線，只影響 readiness 與 upstream_up
type UpstreamProbe struct {
	worker *WorkerClient
	health *HealthService
	metric *telemetry.Metric
	logger *zap.Logger
}

func NewUpstreamProbe(worker *WorkerClient, health *HealthService, metric *telemetry.Metric, logger *zap.Logger) *UpstreamProbe {
	return &UpstreamProbe{worker: worker, health: health, metric: metric, logger: logger}
}

// Run 給 cron 呼叫
func (p *UpstreamProbe) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	p.Check(ctx)
}

// Check 任何 HTTP 回應（含 4xx/5xx）都算可連線
func (p *UpstreamProbe) Check(ctx context.Context) bool {
	status, err := p.worker.Probe(ctx)
	reachable := err == nil
	if reachable != p.health.IsUpstreamReachable() {
		if reachable {
			p.logger.Info("worker api reachable", zap.Int("status", status))
		} else {
			p.logger.Warn("worker api unreachable", zap.String("url", p.worker.BaseURL()), zap.Error(err))
		}
	}
	p.health.SetUpstreamReachable(reachable)
	p.metric.SetUpstreamUp(reachable)
	return reachable
}
