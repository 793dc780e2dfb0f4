package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"zai-console/config"
	"zai-console/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestUpstreamProbeDrivesReadiness(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	wc := newTestWorkerClient(t, srv.URL)
	health := NewHealthService()
	health.SetReady(true)
	probe := NewUpstreamProbe(wc, health, telemetry.NewMetric(&config.Configuration{}), zap.NewNop())

	assert.True(t, probe.Check(context.Background()))
	assert.True(t, health.IsReady())

	srv.Close()
	assert.False(t, probe.Check(context.Background()))
	assert.False(t, health.IsReady())
	assert.True(t, health.IsLive())
}

func TestHealthServiceNotReadyBeforeStart(t *testing.T) {
	health := NewHealthService()
	assert.False(t, health.IsReady())
	health.SetReady(true)
	assert.True(t, health.IsReady())
}
