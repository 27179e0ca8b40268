package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/edirooss/urlparts/internal/domain/history"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	historyKey      = "urlparts:history"       // LIST of JSON entries, newest first
	historyTotalKey = "urlparts:history:total" // counter of entries ever recorded
)

// HistoryRepository keeps a bounded, newest-first log of parse results.
type HistoryRepository struct {
	client *Client
	log    *zap.Logger
	size   int64
}

// NewHistoryRepository retains at most size entries.
func NewHistoryRepository(log *zap.Logger, client *Client, size int64) *HistoryRepository {
	return &HistoryRepository{
		client: client,
		log:    log.Named("history_repo"),
		size:   size,
	}
}

// Record prepends entries (in order, so the last one ends up first), trims
// the list and bumps the total, all in one MULTI/EXEC.
func (r *HistoryRepository) Record(ctx context.Context, entries ...history.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	vals := make([]any, 0, len(entries))
	for _, e := range entries {
		b, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal entry %s: %w", e.ID, err)
		}
		vals = append(vals, b)
	}

	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, historyKey, vals...)
		p.LTrim(ctx, historyKey, 0, r.size-1)
		p.IncrBy(ctx, historyTotalKey, int64(len(entries)))
		return nil
	})
	if err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first. limit <= 0 means all retained.
func (r *HistoryRepository) List(ctx context.Context, limit int64) ([]history.Entry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = limit - 1
	}

	raws, err := r.client.LRange(ctx, historyKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange history: %w", err)
	}
	return decodeEntries(r.log, raws), nil
}

// Total returns how many entries were ever recorded (0 when never set).
func (r *HistoryRepository) Total(ctx context.Context) (int64, error) {
	raw, err := r.client.Get(ctx, historyTotalKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get history total: %w", err)
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse history total %q: %w", raw, err)
	}
	return n, nil
}

// Clear drops retained entries and resets the total.
func (r *HistoryRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, historyKey, historyTotalKey).Err(); err != nil {
		return fmt.Errorf("del history: %w", err)
	}
	return nil
}

// decodeEntries skips (and logs) values that are not valid entries.
func decodeEntries(log *zap.Logger, raws []string) []history.Entry {
	out := make([]history.Entry, 0, len(raws))
	for i, raw := range raws {
		var e history.Entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			log.Warn("bad history json", zap.Int("index", i), zap.Error(err))
			continue
		}
		out = append(out, e)
	}
	return out
}
