package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/dirnav/internal/pathutil"
)

// API routes served by internal/server and consumed by HTTPService.
const (
	RouteListDirectory = "/api/v1/list-directory"
	RouteListDrives    = "/api/v1/list-drives"
	RouteThumbnail     = "/api/v1/thumbnail"
)

// ListDirectoryRequest is the body of a list-directory call.
type ListDirectoryRequest struct {
	Path string `json:"path"`
}

// ErrorResponse is the body of a failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// retryLogger routes retryablehttp's leveled logs to logrus.
type retryLogger struct{}

func (retryLogger) Error(msg string, keysAndValues ...interface{}) {
	logrus.WithField("kv", keysAndValues).Error("http: " + msg)
}

func (retryLogger) Info(msg string, keysAndValues ...interface{}) {
	logrus.WithField("kv", keysAndValues).Debug("http: " + msg)
}

func (retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	logrus.WithField("kv", keysAndValues).Debug("http: " + msg)
}

func (retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	logrus.WithField("kv", keysAndValues).Warn("http: " + msg)
}

// HTTPOptions tunes the HTTP client.
type HTTPOptions struct {
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// HTTPService talks to a dirnav listing server.
type HTTPService struct {
	baseURL string
	client  *retryablehttp.Client
}

// NewHTTPService creates a client for the server at baseURL.
func NewHTTPService(baseURL string, opts HTTPOptions) *HTTPService {
	rc := retryablehttp.NewClient()
	rc.Logger = retryLogger{}
	rc.RetryMax = opts.MaxRetries
	if opts.RetryWaitMin > 0 {
		rc.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		rc.RetryWaitMax = opts.RetryWaitMax
	}
	if opts.Timeout > 0 {
		rc.HTTPClient.Timeout = opts.Timeout
	}

	return &HTTPService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  rc,
	}
}

// ListDirectory asks the server for the contents of p.
func (s *HTTPService) ListDirectory(ctx context.Context, p string) (*DirectoryContents, error) {
	p = pathutil.Normalize(p)

	body, err := json.Marshal(ListDirectoryRequest{Path: p})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+RouteListDirectory, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var contents DirectoryContents
	if err := s.do(req, &contents); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", p, err)
	}
	if contents.Directories == nil {
		contents.Directories = []Directory{}
	}
	if contents.Files == nil {
		contents.Files = []FileInfo{}
	}
	return &contents, nil
}

// ListDrives asks the server for its mounted volumes.
func (s *HTTPService) ListDrives(ctx context.Context) ([]Drive, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+RouteListDrives, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var drives []Drive
	if err := s.do(req, &drives); err != nil {
		return nil, fmt.Errorf("failed to list drives: %w", err)
	}
	return drives, nil
}

func (s *HTTPService) do(req *retryablehttp.Request, dst interface{}) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr ErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return statusError(resp.StatusCode, apiErr.Error)
		}
		return statusError(resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func statusError(code int, msg string) error {
	switch code {
	// the server answers 400 for paths that are missing or not directories
	case http.StatusNotFound, http.StatusBadRequest:
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	default:
		return fmt.Errorf("server returned %d: %s", code, msg)
	}
}
