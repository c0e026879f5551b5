package commands

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/prompt"
	"todosync/internal/todo"
)

const (
	// storageScope grants read and write access to Cloud Storage objects.
	storageScope = "https://www.googleapis.com/auth/devstorage.read_write"

	// How long to wait for the browser redirect.
	callbackTimeout = 5 * time.Minute

	exchangeTimeout = 30 * time.Second

	// Loopback ports tried for the redirect, in order.
	firstCallbackPort = 8085
	callbackPortCount = 5
)

// missingClientHelp is printed when oauth_client.json is absent.
// Arguments: config dir, client file path.
const missingClientHelp = `error: oauth_client.json not found in %s

todosync reads and writes one object in a Cloud Storage bucket. Without a
login it uses Application Default Credentials (gcloud auth application-default login).

To log in with your own account instead, create a "Desktop app" OAuth client
in the Google Cloud console for the project that owns the bucket, download
its JSON and save it as:
  %s

Then run 'todosync login' again.
`

func init() {
	Register(&LoginCmd{})
}

// LoginCmd stores an OAuth token for the remote mirror.
// The stored token takes precedence over Application Default Credentials.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate with Google Cloud Storage" }
func (c *LoginCmd) Usage() string     { return "todosync login [common flags]" }
func (c *LoginCmd) NeedsTasks() bool  { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, todos *todo.Manager, args []string, in *prompt.Reader, out, errOut io.Writer) int {
	if !cfg.HasOAuthClient() {
		fmt.Fprintf(errOut, missingClientHelp, cfg.Dir, cfg.OAuthClientPath())
		return exitcode.AuthError
	}

	oauthConfig, err := loadOAuthConfig(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if hasUsableToken(ctx, cfg, oauthConfig) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	token, err := authorize(ctx, oauthConfig, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	if err := writeToken(cfg.TokenPath(), token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func loadOAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, storageScope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return oauthConfig, nil
}

// hasUsableToken reports whether token.json holds a refresh token that
// the OAuth client can still exchange.
func hasUsableToken(ctx context.Context, cfg *config.Config, oauthConfig *oauth2.Config) bool {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return false
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil || token.RefreshToken == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err = oauthConfig.TokenSource(ctx, &token).Token()
	return err == nil
}

// authorize runs the loopback authorization-code flow with PKCE.
// The consent URL is printed to errOut.
func authorize(ctx context.Context, oauthConfig *oauth2.Config, errOut io.Writer) (*oauth2.Token, error) {
	listener, port, err := listenLoopback()
	if err != nil {
		return nil, err
	}
	defer listener.Close()

	oauthConfig.RedirectURL = fmt.Sprintf("http://localhost:%d/callback", port)
	verifier := oauth2.GenerateVerifier()
	state := oauth2.GenerateVerifier()

	fmt.Fprintln(errOut, "Open this URL in your browser:")
	fmt.Fprintln(errOut, oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier)))

	code, err := awaitCode(ctx, listener, state)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, exchangeTimeout)
	defer cancel()
	token, err := oauthConfig.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	return token, nil
}

func listenLoopback() (net.Listener, int, error) {
	for port := firstCallbackPort; port < firstCallbackPort+callbackPortCount; port++ {
		l, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			return l, port, nil
		}
	}
	return nil, 0, errors.New("could not bind to local port for OAuth callback")
}

// awaitCode serves /callback on listener until a code with the expected
// state arrives, the callback fails, or ctx ends.
func awaitCode(ctx context.Context, listener net.Listener, state string) (string, error) {
	type result struct {
		code string
		err  error
	}
	done := make(chan result, 1)
	report := func(r result) {
		select {
		case done <- r:
		default:
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("state") != state:
			http.Error(w, "State mismatch", http.StatusBadRequest)
			report(result{err: errors.New("oauth state mismatch")})
		case q.Get("code") == "":
			http.Error(w, "No code in callback", http.StatusBadRequest)
			report(result{err: errors.New("no code in callback")})
		default:
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, "<html><body><h1>todosync is logged in</h1><p>You may close this window.</p></body></html>")
			report(result{code: q.Get("code")})
		}
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			report(result{err: err})
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	select {
	case r := <-done:
		return r.code, r.err
	case <-time.After(callbackTimeout):
		return "", errors.New("oauth callback timed out")
	case <-ctx.Done():
		return "", errors.New("cancelled")
	}
}

// writeToken saves token as JSON readable only by the owner.
func writeToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
