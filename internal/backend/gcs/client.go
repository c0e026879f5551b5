// Package gcs implements service.Mirror on a Google Cloud Storage object.
package gcs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/googleapis/gax-go/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"

	"todosync/internal/config"
	"todosync/internal/logger"
	"todosync/internal/plaintext"
	"todosync/internal/service"
)

const (
	// ContentType is the media type of the stored object.
	ContentType = "text/plain; charset=utf-8"

	// Scope is the OAuth scope needed to read and write objects.
	Scope = storage.DevstorageReadWriteScope

	// maxBodySize caps the downloaded object size. Larger objects are rejected.
	maxBodySize = 16 << 20

	// maxRetries bounds retries of throttled or failed server responses.
	maxRetries = 2
)

// retryBackoff returns the pause schedule between retries.
func retryBackoff() gax.Backoff {
	return gax.Backoff{Initial: 100 * time.Millisecond, Max: time.Second, Multiplier: 2}
}

// Client implements service.Mirror using the Cloud Storage JSON API.
type Client struct {
	svc    *storage.Service
	remote config.Remote
}

// New creates a client for cfg.Remote.
// A token stored by "todosync login" is used when present; otherwise
// Application Default Credentials are looked up in the environment.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	var opts []option.ClientOption

	if cfg.HasToken() && cfg.HasOAuthClient() {
		httpClient, err := tokenClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithHTTPClient(httpClient))
		logger.Log.WithField("token", cfg.TokenPath()).Debug("using stored oauth token")
	} else {
		opts = append(opts, option.WithScopes(Scope))
		logger.Log.Debug("using application default credentials")
	}

	svc, err := storage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage service: %w", err)
	}

	return &Client{svc: svc, remote: cfg.Remote}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, remote config.Remote, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := storage.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc, remote: remote}, nil
}

// tokenClient builds an auto-refreshing HTTP client from the stored token.
func tokenClient(ctx context.Context, cfg *config.Config) (*http.Client, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}

	return oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token)), nil
}

// Upload overwrites the object with the encoded task list.
func (c *Client) Upload(ctx context.Context, tasks []service.Task) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	body := plaintext.Encode(tasks)
	obj := &storage.Object{Name: c.remote.ObjectKey, ContentType: ContentType}

	err := c.retry(ctx, "upload", func() error {
		_, err := c.svc.Objects.Insert(c.remote.Bucket, obj).
			Media(strings.NewReader(body), googleapi.ContentType(ContentType)).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return c.wrapError("upload", err)
	}

	c.log().WithField("bytes", len(body)).Debug("uploaded tasks")
	return nil
}

// Download fetches and decodes the object.
func (c *Client) Download(ctx context.Context) ([]service.Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var resp *http.Response
	err := c.retry(ctx, "download", func() error {
		var err error
		resp, err = c.svc.Objects.Get(c.remote.Bucket, c.remote.ObjectKey).Context(ctx).Download()
		return err
	})
	if err != nil {
		return nil, c.wrapError("download", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, c.wrapError("download", err)
	}
	if len(data) > maxBodySize {
		return nil, &service.RemoteError{Op: "download", Err: fmt.Errorf("%s exceeds %d bytes", c.object(), maxBodySize)}
	}

	c.log().WithField("bytes", len(data)).Debug("downloaded tasks")
	return plaintext.Decode(string(data))
}

// retry runs call until it succeeds, fails permanently, or maxRetries is spent.
func (c *Client) retry(ctx context.Context, op string, call func() error) error {
	bo := retryBackoff()
	for attempt := 0; ; attempt++ {
		err := call()
		if err == nil || attempt >= maxRetries || !retryable(err) {
			return err
		}

		pause := bo.Pause()
		c.log().WithFields(logrus.Fields{"op": op, "attempt": attempt + 1, "pause": pause}).Debugf("retrying: %v", err)
		if sleepErr := gax.Sleep(ctx, pause); sleepErr != nil {
			return err
		}
	}
}

// retryable reports whether err is a throttling or server-side API error.
func retryable(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.remote.Timeout <= 0 {
		return context.WithTimeout(ctx, config.DefaultRemoteTimeout)
	}
	return context.WithTimeout(ctx, c.remote.Timeout)
}

func (c *Client) log() *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{"bucket": c.remote.Bucket, "key": c.remote.ObjectKey})
}

// object returns the gs:// URL of the mirrored object.
func (c *Client) object() string {
	return fmt.Sprintf("gs://%s/%s", c.remote.Bucket, c.remote.ObjectKey)
}

// wrapError turns API errors into RemoteErrors with user-friendly messages.
func (c *Client) wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &service.RemoteError{Op: op, Err: fmt.Errorf("request timed out")}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &service.RemoteError{Op: op, Err: fmt.Errorf("access denied to %s (run: todosync login)", c.object())}
		case http.StatusNotFound:
			return &service.RemoteError{Op: op, Err: fmt.Errorf("not found: %s", c.object())}
		}
	}

	return &service.RemoteError{Op: op, Err: err}
}
