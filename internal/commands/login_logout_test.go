package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todosync/internal/commands"
	"todosync/internal/config"
	"todosync/internal/exitcode"
)

const testOAuthClient = `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`

// authDir returns a config whose directory holds the given files.
func authDir(t *testing.T, quiet bool, files map[string]string) *config.Config {
	t.Helper()
	cfg := &config.Config{Dir: t.TempDir(), Quiet: quiet}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(cfg.Dir, name), []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return cfg
}

func runAuth(cmd commands.Command, ctx context.Context, cfg *config.Config) (stdout, stderr string, code int) {
	var outBuf, errBuf bytes.Buffer
	code = cmd.Run(ctx, cfg, nil, nil, nil, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestLogin_NoOAuthClient(t *testing.T) {
	cfg := authDir(t, false, nil)

	stdout, stderr, code := runAuth(&commands.LoginCmd{}, context.Background(), cfg)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	for _, want := range []string{cfg.OAuthClientPath(), "Application Default Credentials"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("expected stderr to mention %q, got %q", want, stderr)
		}
	}
}

func TestLogin_InvalidOAuthClient(t *testing.T) {
	cfg := authDir(t, false, map[string]string{config.OAuthClientFile: "not json"})

	_, stderr, code := runAuth(&commands.LoginCmd{}, context.Background(), cfg)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: invalid oauth_client.json") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Unusable tokens must start a new authorization instead of
// reporting "already logged in". The cancelled context ends the flow.
func TestLogin_UnusableTokenStartsFlow(t *testing.T) {
	tokens := map[string]string{
		"corrupt":            `{broken`,
		"no refresh token":   `{"access_token":"expired","token_type":"Bearer"}`,
		"expired no refresh": `{"access_token":"test","token_type":"Bearer","expiry":"2020-01-01T00:00:00Z"}`,
	}

	for name, token := range tokens {
		t.Run(name, func(t *testing.T) {
			cfg := authDir(t, false, map[string]string{
				config.OAuthClientFile: testOAuthClient,
				config.TokenFile:       token,
			})
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			stdout, _, code := runAuth(&commands.LoginCmd{}, ctx, cfg)

			if stdout == "already logged in\n" {
				t.Error("unusable token reported as logged in")
			}
			if code != exitcode.AuthError {
				t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
			}
		})
	}
}

func TestLogout(t *testing.T) {
	tests := []struct {
		name      string
		quiet     bool
		withToken bool
		stdout    string
	}{
		{"removes token", false, true, "ok\n"},
		{"not logged in", false, false, "not logged in\n"},
		{"not logged in quiet", true, false, ""},
		{"removes token quiet", true, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := map[string]string{config.OAuthClientFile: testOAuthClient}
			if tt.withToken {
				files[config.TokenFile] = `{"access_token":"test","refresh_token":"test"}`
			}
			cfg := authDir(t, tt.quiet, files)

			stdout, stderr, code := runAuth(&commands.LogoutCmd{}, context.Background(), cfg)

			if code != exitcode.Success {
				t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
			}
			if stderr != "" {
				t.Errorf("expected no stderr, got %q", stderr)
			}
			if stdout != tt.stdout {
				t.Errorf("expected %q, got %q", tt.stdout, stdout)
			}
			if cfg.HasToken() {
				t.Error("token.json should not exist after logout")
			}
			if !cfg.HasOAuthClient() {
				t.Error("oauth_client.json must be kept")
			}
		})
	}
}
