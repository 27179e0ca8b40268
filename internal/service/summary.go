package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/edirooss/urlparts/internal/domain/history"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const topHostsLimit = 10

type SummaryOptions struct {
	// TTL controls how long the in-memory snapshot is served; default 1s.
	TTL time.Duration
	// RefreshTimeout bounds Redis work for a single refresh; default 500ms.
	RefreshTimeout time.Duration
	// Serve the previous snapshot when a refresh fails.
	AllowStaleOnError bool
}

func (o *SummaryOptions) setDefaults() {
	if o.TTL <= 0 {
		o.TTL = time.Second
	}
	if o.RefreshTimeout <= 0 {
		o.RefreshTimeout = 500 * time.Millisecond
	}
}

// SummaryResult lets the handler set cache headers.
type SummaryResult struct {
	Data        history.Summary
	CacheHit    bool
	GeneratedAt time.Time
}

// SummaryService aggregates the parse history into a cached snapshot.
type SummaryService struct {
	log   *zap.Logger
	store HistoryStore

	mu      sync.RWMutex
	cache   *history.Summary
	expires time.Time
	genAt   time.Time
	tickets uint64 // refreshes started
	stored  uint64 // ticket of the refresh held in cache

	opts SummaryOptions
	now  func() time.Time

	sg singleflight.Group
}

// NewSummaryService returns a service reading from store. Reuse a single
// instance per process.
func NewSummaryService(log *zap.Logger, store HistoryStore, opts SummaryOptions) *SummaryService {
	opts.setDefaults()

	return &SummaryService{
		log:   log.Named("summary_service"),
		store: store,
		opts:  opts,
		now:   time.Now,
	}
}

// Get returns the cached snapshot, refreshing it when expired or when force
// is set. Concurrent refreshes are coalesced.
func (s *SummaryService) Get(ctx context.Context, force bool) (SummaryResult, error) {
	if s.store == nil {
		return SummaryResult{}, ErrHistoryUnavailable
	}

	if !force {
		if res, ok := s.fresh(); ok {
			return res, nil
		}
	}

	// a forced caller must not join a plain flight that may return the
	// snapshot it asked to bypass
	key := "summary-refresh"
	if force {
		key = "summary-refresh-force"
	}

	v, err, _ := s.sg.Do(key, func() (any, error) {
		if !force {
			// another flight may have refreshed while we waited
			if res, ok := s.fresh(); ok {
				return res, nil
			}
		}

		ctx, cancel := context.WithTimeout(ctx, s.opts.RefreshTimeout)
		defer cancel()

		s.mu.Lock()
		s.tickets++
		ticket := s.tickets
		s.mu.Unlock()

		start := s.now()
		data, err := s.refresh(ctx)
		if err != nil {
			if s.opts.AllowStaleOnError {
				if res, ok := s.stale(); ok {
					s.log.Warn("summary refresh failed; serving stale", zap.Error(err))
					return res, nil
				}
			}
			return nil, err
		}

		s.mu.Lock()
		if ticket > s.stored { // never replace a newer snapshot
			s.cache = &data
			s.expires = s.now().Add(s.opts.TTL)
			s.genAt = start
			s.stored = ticket
		}
		s.mu.Unlock()

		return SummaryResult{Data: cloneSummary(data), GeneratedAt: start}, nil
	})
	if err != nil {
		return SummaryResult{}, err
	}
	return v.(SummaryResult), nil
}

// Invalidate drops the snapshot so the next Get refreshes.
func (s *SummaryService) Invalidate() {
	s.mu.Lock()
	s.cache = nil
	s.expires = time.Time{}
	s.genAt = time.Time{}
	s.stored = s.tickets // drop results of refreshes already running
	s.mu.Unlock()
}

func (s *SummaryService) fresh() (SummaryResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cache == nil || !s.now().Before(s.expires) {
		return SummaryResult{}, false
	}
	return SummaryResult{Data: cloneSummary(*s.cache), CacheHit: true, GeneratedAt: s.genAt}, true
}

func (s *SummaryService) stale() (SummaryResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cache == nil {
		return SummaryResult{}, false
	}
	return SummaryResult{Data: cloneSummary(*s.cache), CacheHit: true, GeneratedAt: s.genAt}, true
}

// refresh loads retained entries and the running total concurrently.
func (s *SummaryService) refresh(ctx context.Context) (history.Summary, error) {
	var (
		entries []history.Entry
		total   int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		entries, err = s.store.List(gctx, 0)
		return err
	})
	g.Go(func() (err error) {
		total, err = s.store.Total(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return history.Summary{}, err
	}

	return summarize(entries, total), nil
}

func summarize(entries []history.Entry, total int64) history.Summary {
	sum := history.Summary{
		Total:      total,
		Retained:   len(entries),
		ByProtocol: make(map[string]int),
		TopHosts:   []history.HostCount{},
	}

	hosts := make(map[string]int)
	for _, e := range entries {
		proto := ""
		if e.Parts.Protocol != nil {
			proto = *e.Parts.Protocol
		}
		sum.ByProtocol[proto]++

		if e.Parts.Host != nil {
			hosts[*e.Parts.Host]++
		}
		if e.Parts.Search != nil {
			sum.Params.WithSearch++
		}
		sum.Params.Pairs += len(e.Parts.Params)
	}

	for h, n := range hosts {
		sum.TopHosts = append(sum.TopHosts, history.HostCount{Host: h, Count: n})
	}
	sort.Slice(sum.TopHosts, func(i, j int) bool {
		if sum.TopHosts[i].Count == sum.TopHosts[j].Count {
			return sum.TopHosts[i].Host < sum.TopHosts[j].Host
		}
		return sum.TopHosts[i].Count > sum.TopHosts[j].Count
	})
	if len(sum.TopHosts) > topHostsLimit {
		sum.TopHosts = sum.TopHosts[:topHostsLimit]
	}

	return sum
}

func cloneSummary(in history.Summary) history.Summary {
	out := in
	out.ByProtocol = make(map[string]int, len(in.ByProtocol))
	for k, v := range in.ByProtocol {
		out.ByProtocol[k] = v
	}
	out.TopHosts = append([]history.HostCount{}, in.TopHosts...)
	return out
}
