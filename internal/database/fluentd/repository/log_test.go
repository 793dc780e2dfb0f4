package repository

import (
	"context"
	"testing"

	"zai-console/config"
	"zai-console/internal/core"
	"zai-console/internal/database/fluentd/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingClient struct {
	tags    []string
	records []map[string]any
}

func (r *recordingClient) Post(_ context.Context, tag string, message any) error {
	r.tags = append(r.tags, tag)
	r.records = append(r.records, message.(map[string]any))
	return nil
}

func (r *recordingClient) Close() error { return nil }

func TestLogRepositoryFillsDefaults(t *testing.T) {
	rc := &recordingClient{}
	conf := &config.Configuration{}
	conf.App.Version = "2.1.0"
	repo := NewLogRepository(conf, rc)

	require.NoError(t, repo.LogUpstream(context.Background(), model.UpstreamLog{
		Route:      string(core.WorkerRouteStats),
		Method:     "GET",
		StatusCode: 200,
	}))
	require.NoError(t, repo.LogRequest(context.Background(), model.RequestLog{RequestID: "r1", Path: "/api/admin/data"}))

	require.Len(t, rc.records, 2)
	assert.Equal(t, string(core.FluentdUpstream), rc.tags[0])
	assert.Equal(t, "2.1.0", rc.records[0]["version"])
	assert.NotEmpty(t, rc.records[0]["logged_at"])
	assert.Equal(t, "/admin/stats", rc.records[0]["route"])
	assert.Equal(t, string(core.FluentdRequest), rc.tags[1])
}
