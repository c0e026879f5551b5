// Package config handles the configuration directory, config.toml and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "todosync"

	// ConfigFile is the optional settings filename inside the config directory.
	ConfigFile = "config.toml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"
)

// Defaults for settings not found in config.toml or the environment.
const (
	DefaultTodoFile      = "todos.json"
	DefaultBucket        = "todo-list"
	DefaultObjectKey     = "tasks.txt"
	DefaultPassword      = "1234"
	DefaultRemoteTimeout = 10 * time.Second
)

// Environment variables that override config.toml.
const (
	EnvTodoFile      = "TODOSYNC_TODO_FILE"
	EnvBucket        = "TODOSYNC_BUCKET"
	EnvObjectKey     = "TODOSYNC_OBJECT_KEY"
	EnvPassword      = "TODOSYNC_PASSWORD"
	EnvRemoteTimeout = "TODOSYNC_REMOTE_TIMEOUT"
)

// Remote identifies the object that mirrors the task list.
type Remote struct {
	Bucket    string
	ObjectKey string

	// Timeout bounds each remote call.
	Timeout time.Duration
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// TodoFile is the local JSON file holding the task list.
	TodoFile string

	// Remote is the object storage location of the mirror.
	Remote Remote

	// Password is the shared secret checked by the access gate.
	Password string
}

// fileSettings mirrors the keys accepted in config.toml.
type fileSettings struct {
	TodoFile      string `toml:"todo_file"`
	Bucket        string `toml:"bucket"`
	ObjectKey     string `toml:"object_key"`
	Password      string `toml:"password"`
	RemoteTimeout string `toml:"remote_timeout"`
}

// New creates a Config with the default or specified config directory and
// loads settings from defaults, then config.toml, then the environment.
// If configDir is empty, uses XDG_CONFIG_HOME/todosync or $HOME/.config/todosync.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{
		Dir:      dir,
		TodoFile: DefaultTodoFile,
		Remote: Remote{
			Bucket:    DefaultBucket,
			ObjectKey: DefaultObjectKey,
			Timeout:   DefaultRemoteTimeout,
		},
		Password: DefaultPassword,
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (c *Config) loadFile() error {
	var fs fileSettings
	_, err := toml.DecodeFile(c.ConfigPath(), &fs)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config file %s: %w", c.ConfigPath(), err)
	}

	setString(&c.TodoFile, fs.TodoFile)
	setString(&c.Remote.Bucket, fs.Bucket)
	setString(&c.Remote.ObjectKey, fs.ObjectKey)
	setString(&c.Password, fs.Password)
	if fs.RemoteTimeout != "" {
		d, err := parseTimeout(fs.RemoteTimeout)
		if err != nil {
			return fmt.Errorf("loading config file %s: remote_timeout: %w", c.ConfigPath(), err)
		}
		c.Remote.Timeout = d
	}
	return nil
}

func (c *Config) loadEnv() error {
	setString(&c.TodoFile, os.Getenv(EnvTodoFile))
	setString(&c.Remote.Bucket, os.Getenv(EnvBucket))
	setString(&c.Remote.ObjectKey, os.Getenv(EnvObjectKey))
	setString(&c.Password, os.Getenv(EnvPassword))
	if v := os.Getenv(EnvRemoteTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRemoteTimeout, err)
		}
		c.Remote.Timeout = d
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive: %s", s)
	}
	return d, nil
}

// ConfigPath returns the path to config.toml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
