package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvTodoFile, EnvBucket, EnvObjectKey, EnvPassword, EnvRemoteTimeout} {
		t.Setenv(k, "")
	}
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, DefaultTodoFile, cfg.TodoFile)
	assert.Equal(t, DefaultPassword, cfg.Password)
	assert.Equal(t, Remote{Bucket: DefaultBucket, ObjectKey: DefaultObjectKey, Timeout: DefaultRemoteTimeout}, cfg.Remote)
}

func TestNew_FileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := `todo_file = "/tmp/mine.json"
bucket = "file-bucket"
object_key = "file.txt"
password = "from-file"
remote_timeout = "3s"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0600))

	t.Setenv(EnvBucket, "env-bucket")
	t.Setenv(EnvPassword, "from-env")

	cfg, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/mine.json", cfg.TodoFile)
	assert.Equal(t, "env-bucket", cfg.Remote.Bucket)
	assert.Equal(t, "file.txt", cfg.Remote.ObjectKey)
	assert.Equal(t, "from-env", cfg.Password)
	assert.Equal(t, 3*time.Second, cfg.Remote.Timeout)
}

func TestNew_InvalidFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("bucket = "), 0600))

	_, err := New(dir)
	assert.ErrorContains(t, err, "loading config file")
}

func TestNew_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRemoteTimeout, "-1s")

	_, err := New(t.TempDir())
	assert.ErrorContains(t, err, EnvRemoteTimeout)
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", AppName), DefaultConfigDir())
}

func TestTokenHelpers(t *testing.T) {
	clearEnv(t)
	cfg, err := New(t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.HasToken())
	require.NoError(t, os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600))
	assert.True(t, cfg.HasToken())
	require.NoError(t, cfg.RemoveToken())
	assert.False(t, cfg.HasToken())
}
