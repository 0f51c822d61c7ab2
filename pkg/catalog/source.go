package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fantaelite/draftmaster/pkg/db"
)

const (
	defaultFetchAttempts = 3
	defaultFetchBackoff  = 500 * time.Millisecond
	defaultFetchTimeout  = 30 * time.Second
)

// Source loads a catalog from somewhere
type Source interface {
	Load(ctx context.Context) (*Result, error)
}

// FileSource reads a delimited catalog from disk
type FileSource struct {
	Path    string
	Options ParseOptions
}

func (s *FileSource) Load(ctx context.Context) (*Result, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return Parse(f, s.Options)
}

// HTTPSource downloads a delimited catalog, retrying transient failures
type HTTPSource struct {
	url         string
	client      *http.Client
	options     ParseOptions
	logger      *zap.Logger
	maxAttempts int
	backoffFn   func(attempt int) time.Duration
}

// NewHTTPSource creates an HTTPSource. If maxAttempts/backoff are <= 0, defaults are used.
func NewHTTPSource(url string, opts ParseOptions, logger *zap.Logger, maxAttempts int, backoff time.Duration) *HTTPSource {
	if maxAttempts <= 0 {
		maxAttempts = defaultFetchAttempts
	}
	if backoff <= 0 {
		backoff = defaultFetchBackoff
	}
	return &HTTPSource{
		url:         url,
		client:      &http.Client{Timeout: defaultFetchTimeout},
		options:     opts,
		logger:      logger,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (s *HTTPSource) Load(ctx context.Context) (*Result, error) {
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		body, err := s.fetch(ctx)
		if err == nil {
			return Parse(strings.NewReader(body), s.options)
		}
		lastErr = err

		var status *statusError
		if errors.As(err, &status) && !status.retryable() {
			return nil, fmt.Errorf("failed to download catalog: %w", err)
		}

		if attempt == s.maxAttempts {
			break
		}

		s.logger.Warn("Catalog download failed, retrying",
			zap.String("url", s.url),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.maxAttempts),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.backoffFn(attempt)):
		}
	}

	return nil, fmt.Errorf("failed to download catalog after %d attempts: %w", s.maxAttempts, lastErr)
}

func (s *HTTPSource) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}

	return string(body), nil
}

// statusError is a non-200 response from the catalog server
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.body)
}

// retryable returns true for server errors and rate limiting; other client errors are permanent
func (e *statusError) retryable() bool {
	return e.code == http.StatusTooManyRequests || e.code >= http.StatusInternalServerError
}

// StoreSource loads the catalog last imported into a store
type StoreSource struct {
	Store db.CatalogStore
}

func (s *StoreSource) Load(ctx context.Context) (*Result, error) {
	records, err := s.Store.GetPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stored players: %w", err)
	}

	result := &Result{Report: Report{Rows: len(records), Imputed: make(map[Column]int)}}
	for _, record := range records {
		player := record.ToPlayer()
		if len(player.Roles) == 0 {
			result.Report.Excluded++
			result.Report.ExcludedNames = append(result.Report.ExcludedNames, player.Name)
			continue
		}
		result.Players = append(result.Players, player)
	}
	return result, nil
}

// CachedSource loads the wrapped source once and serves copies of that base catalog,
// so every request in a session works on the same players.
type CachedSource struct {
	source Source

	mu     sync.Mutex
	result *Result
}

func NewCachedSource(source Source) *CachedSource {
	return &CachedSource{source: source}
}

// Load returns a copy of the cached catalog, loading it on first use.
// A failed load is not cached.
func (s *CachedSource) Load(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil {
		result, err := s.source.Load(ctx)
		if err != nil {
			return nil, err
		}
		s.result = result
	}

	return s.result.Clone(), nil
}

// Reset drops the cached catalog; the next Load reads the wrapped source again
func (s *CachedSource) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = nil
}
