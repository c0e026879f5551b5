package commands

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func startCallback(t *testing.T, state string) (url string, result chan [2]string) {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	result = make(chan [2]string, 1)
	go func() {
		code, err := awaitCode(ctx, l, state)
		msg := ""
		if err != nil {
			msg = err.Error()
		}
		result <- [2]string{code, msg}
	}()
	return "http://" + l.Addr().String() + "/callback", result
}

func TestAwaitCode(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
		code   string
		err    string
	}{
		{"accepted", "?state=s1&code=abc", http.StatusOK, "abc", ""},
		{"state mismatch", "?state=other&code=abc", http.StatusBadRequest, "", "oauth state mismatch"},
		{"missing code", "?state=s1", http.StatusBadRequest, "", "no code in callback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, result := startCallback(t, "s1")

			resp, err := http.Get(url + tt.query)
			if err != nil {
				t.Fatalf("callback request: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, resp.StatusCode)
			}

			got := <-result
			if got[0] != tt.code || got[1] != tt.err {
				t.Errorf("expected (%q, %q), got (%q, %q)", tt.code, tt.err, got[0], got[1])
			}
		})
	}
}

func TestAwaitCode_Cancelled(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := awaitCode(ctx, l, "s1"); err == nil || err.Error() != "cancelled" {
		t.Errorf("expected cancelled, got %v", err)
	}
}

func TestWriteToken_OwnerOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	if err := writeToken(path, &oauth2.Token{AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatalf("writeToken: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected mode 0600, got %o", perm)
	}
}
