package config

import (
	"os"
	"strings"
	"time"
)

// DefaultWorkerBaseURL 未設定任何環境變數時使用
const DefaultWorkerBaseURL = "https://zai-2api-serverless.rand0mk4cas.workers.dev"

// WorkerAPIURLEnv 與前端版本共用的環境變數名稱
const WorkerAPIURLEnv = "WORKER_API_URL"

type Worker struct {
	BaseURL string `mapstructure:"BASE_URL" json:"base_url" yaml:"base_url"`
	// 單次上游請求逾時（秒），0 表示不限制
	Timeout *int `mapstructure:"TIMEOUT" json:"timeout" yaml:"timeout"`
	// upstream 探測排程（cron，含秒）
	ProbeSpec string `mapstructure:"PROBE_SPEC" json:"probe_spec" yaml:"probe_spec"`
}

// ResolveBaseURL WORKER_API_URL > WORKER__BASE_URL > 預設值
func (w Worker) ResolveBaseURL() string {
	if v := strings.TrimSpace(os.Getenv(WorkerAPIURLEnv)); v != "" {
		return strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(w.BaseURL); v != "" {
		return strings.TrimRight(v, "/")
	}
	return DefaultWorkerBaseURL
}

func (w Worker) RequestTimeout() time.Duration {
	if w.Timeout == nil {
		return 30 * time.Second
	}
	if *w.Timeout <= 0 {
		return 0
	}
	return time.Duration(*w.Timeout) * time.Second
}

func (w Worker) ResolveProbeSpec() string {
	if w.ProbeSpec == "" {
		return "*/30 * * * * *"
	}
	return w.ProbeSpec
}
