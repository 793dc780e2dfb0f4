package console

import (
	"os"
	"path/filepath"
	"testing"

	"zai-console/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	conf := &config.Configuration{}
	conf.Console.SessionFile = filepath.Join(t.TempDir(), "nested", "session.json")
	return NewSession(conf)
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestSession(t)

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, s.Save("admin-sk-abc"))
	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	key, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "admin-sk-abc", key)

	require.NoError(t, s.Clear())
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	// 重複登出不報錯
	assert.NoError(t, s.Clear())
}

func TestSessionTightensExistingFileMode(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o700))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{}`), 0o644))

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, s.Save("admin-sk-new"))
	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
