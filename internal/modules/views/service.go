package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/qiushui/site-core/internal/pkg/metrics"
	"go.uber.org/zap"
)

const maxKeyLength = 255

// Service validates keys and classifies store failures.
type Service struct {
	store   Store
	backend string
	log     *zap.Logger
}

func NewService(store Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	backend := backendOf(store)
	return &Service{store: store, backend: backend, log: log.With(zap.String("backend", backend))}
}

func (s *Service) Backend() string { return s.backend }

// NormalizeKey trims surrounding whitespace and slashes and rejects keys that
// are empty, too long or contain a ".." segment.
func NormalizeKey(raw string) (string, error) {
	key := strings.Trim(strings.TrimSpace(raw), "/")
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if len(key) > maxKeyLength {
		return "", fmt.Errorf("%w: longer than %d bytes", ErrInvalidKey, maxKeyLength)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: parent segment", ErrInvalidKey)
		}
	}
	return key, nil
}

// Get returns the stored count, 0 when the key has never been incremented.
func (s *Service) Get(ctx context.Context, raw string) (int64, error) {
	key, err := NormalizeKey(raw)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	n, err := s.store.Get(ctx, key)
	metrics.RecordViewOp(s.backend, "get", start, err)
	if err != nil {
		s.log.Warn("view count read failed", zap.String("key", key), zap.Error(err))
		return 0, fmt.Errorf("%w: get %s: %w", ErrUnavailable, key, err)
	}
	return n, nil
}

// Increment adds one view and returns the new count.
func (s *Service) Increment(ctx context.Context, raw string) (int64, error) {
	key, err := NormalizeKey(raw)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	n, err := s.store.Increment(ctx, key)
	metrics.RecordViewOp(s.backend, "increment", start, err)
	if err != nil {
		s.log.Error("view count increment failed", zap.String("key", key), zap.Error(err))
		return 0, fmt.Errorf("%w: increment %s: %w", ErrUnavailable, key, err)
	}
	s.log.Debug("view counted", zap.String("key", key), zap.Int64("views", n))
	return n, nil
}

// All returns every stored counter.
func (s *Service) All(ctx context.Context) (map[string]int64, error) {
	start := time.Now()
	counts, err := s.store.All(ctx)
	metrics.RecordViewOp(s.backend, "all", start, err)
	if err != nil {
		s.log.Warn("view count bulk read failed", zap.Error(err))
		return nil, fmt.Errorf("%w: all: %w", ErrUnavailable, err)
	}
	return counts, nil
}

// Counts is the bulk read used to decorate content listings.
func (s *Service) Counts(ctx context.Context) (map[string]int64, error) {
	return s.All(ctx)
}
