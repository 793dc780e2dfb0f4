package console

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"zai-console/config"
)

// ErrNoSession 尚未登入或已登出
var ErrNoSession = errors.New("no saved admin key, run `app console login --key <admin key>` first")

type sessionFile struct {
	AdminKey string    `json:"admin_key"`
	SavedAt  time.Time `json:"saved_at"`
}

// Session 本機快取的 admin key；檔案權限 0600
type Session struct {
	path string
}

func NewSession(conf *config.Configuration) *Session {
	return &Session{path: conf.Console.ResolveSessionFile()}
}

func (s *Session) Path() string {
	return s.path
}

func (s *Session) Load() (string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	var f sessionFile
	if err := json.Unmarshal(b, &f); err != nil {
		return "", err
	}
	if f.AdminKey == "" {
		return "", ErrNoSession
	}
	return f.AdminKey, nil
}

func (s *Session) Save(adminKey string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	b, err := json.Marshal(sessionFile{AdminKey: adminKey, SavedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return err
	}
	// 檔案已存在時 WriteFile 不會改權限
	return os.Chmod(s.path, 0o600)
}

func (s *Session) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
