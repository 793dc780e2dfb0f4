package config

import (
	"os"
	"path/filepath"
)

type Console struct {
	// BFF 位址，console 子命令使用
	ServerURL string `mapstructure:"SERVER_URL" json:"server_url" yaml:"server_url"`
	// admin key 快取檔
	SessionFile string `mapstructure:"SESSION_FILE" json:"session_file" yaml:"session_file"`
}

func (c Console) ResolveServerURL(app App) string {
	if c.ServerURL != "" {
		return c.ServerURL
	}
	return "http://127.0.0.1" + app.ListenAddr()
}

func (c Console) ResolveSessionFile() string {
	if c.SessionFile != "" {
		return c.SessionFile
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "zai-console", "session.json")
}
