package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edirooss/urlparts/internal/domain/history"
	"github.com/edirooss/urlparts/pkg/hostutil"
	"github.com/edirooss/urlparts/pkg/urlparts"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidHost        = errors.New("invalid host")
	ErrHistoryUnavailable = errors.New("history unavailable")
)

// HistoryStore persists parse results. *redis.HistoryRepository implements it.
type HistoryStore interface {
	Record(ctx context.Context, entries ...history.Entry) error
	List(ctx context.Context, limit int64) ([]history.Entry, error)
	Total(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
}

// URLService decomposes URLs and keeps a history of what it parsed.
type URLService struct {
	log   *zap.Logger
	store HistoryStore // nil disables history

	now   func() time.Time
	newID func() string
}

// NewURLService wires the history store; store may be nil.
func NewURLService(log *zap.Logger, store HistoryStore) *URLService {
	return &URLService{
		log:   log.Named("url_service"),
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Parse decomposes raw. With validate set, a present host must be a valid
// hostname or IPv4 address (optionally with :port); otherwise the result is
// returned as-is, whatever the input looked like.
//
// The result is recorded to history on a best-effort basis.
func (s *URLService) Parse(ctx context.Context, raw string, validate bool) (urlparts.URLParts, error) {
	parts := urlparts.Parse(raw)

	var (
		valid *bool
		err   error
	)
	if validate {
		err = validateHost(parts)
		ok := err == nil
		valid = &ok
	}

	s.record(ctx, s.entry(raw, parts, valid))
	if err != nil {
		return urlparts.URLParts{}, err
	}
	return parts, nil
}

// ParseBatch decomposes every input without validation and records them as
// one history write.
func (s *URLService) ParseBatch(ctx context.Context, raws []string) []urlparts.URLParts {
	out := make([]urlparts.URLParts, len(raws))
	entries := make([]history.Entry, len(raws))
	for i, raw := range raws {
		out[i] = urlparts.Parse(raw)
		entries[i] = s.entry(raw, out[i], nil)
	}

	s.record(ctx, entries...)
	return out
}

// History returns up to limit recorded entries, newest first.
func (s *URLService) History(ctx context.Context, limit int64) ([]history.Entry, error) {
	if s.store == nil {
		return nil, ErrHistoryUnavailable
	}
	entries, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHistoryUnavailable, err)
	}
	return entries, nil
}

// ClearHistory drops every recorded entry.
func (s *URLService) ClearHistory(ctx context.Context) error {
	if s.store == nil {
		return ErrHistoryUnavailable
	}
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrHistoryUnavailable, err)
	}
	return nil
}

func validateHost(parts urlparts.URLParts) error {
	if parts.Host == nil {
		return nil
	}
	if err := hostutil.ValidateHost(*parts.Host); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHost, err)
	}
	return nil
}

func (s *URLService) entry(raw string, parts urlparts.URLParts, valid *bool) history.Entry {
	return history.Entry{
		ID:       s.newID(),
		Input:    raw,
		Parts:    parts,
		Valid:    valid,
		ParsedAt: s.now().UTC(),
	}
}

func (s *URLService) record(ctx context.Context, entries ...history.Entry) {
	if s.store == nil || len(entries) == 0 {
		return
	}
	if err := s.store.Record(ctx, entries...); err != nil {
		s.log.Warn("history record failed", zap.Int("entries", len(entries)), zap.Error(err))
	}
}
