package config

type Log struct {
	// debug / info / warn / error
	Level string `mapstructure:"LEVEL" json:"level" yaml:"level"`
	// 留空只輸出到 stdout/stderr
	File       string `mapstructure:"FILE" json:"file" yaml:"file"`
	MaxSize    int    `mapstructure:"MAX_SIZE" json:"max_size" yaml:"max_size"` // MB
	MaxBackups int    `mapstructure:"MAX_BACKUPS" json:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"MAX_AGE" json:"max_age" yaml:"max_age"` // 天
	Compress   bool   `mapstructure:"COMPRESS" json:"compress" yaml:"compress"`
}
