package config

type MetricConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"ENABLED" json:"enabled"`
	// Worker API 延遲直方圖的 bucket，空值用 prometheus 預設
	Buckets []float64 `yaml:"buckets" mapstructure:"BUCKETS" json:"buckets"`
}

type TraceConfig struct {
	Enabled     bool    `yaml:"enabled" mapstructure:"ENABLED" json:"enabled"`
	EndpointUrl string  `yaml:"endpointUrl" mapstructure:"ENDPOINT_URL" json:"endpointUrl"`
	SampleRatio float64 `yaml:"sampleRatio" mapstructure:"SAMPLE_RATIO" json:"sampleRatio"`
}

// Sampled 比例落在 (0,1) 才做比例取樣，其餘視為全取樣
func (t TraceConfig) Sampled() (float64, bool) {
	if t.SampleRatio > 0 && t.SampleRatio < 1 {
		return t.SampleRatio, true
	}
	return 1, false
}

type TelemetryConfig struct {
	Metric MetricConfig `yaml:"metric" mapstructure:"METRIC" json:"metric"`
	Trace  TraceConfig  `yaml:"trace" mapstructure:"TRACE" json:"trace"`
}
