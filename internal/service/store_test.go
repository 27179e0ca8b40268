package service

import (
	"context"
	"sync"

	"github.com/edirooss/urlparts/internal/domain/history"
)

// memStore is an in-memory HistoryStore.
type memStore struct {
	mu      sync.Mutex
	entries []history.Entry // newest first
	total   int64
	records int // Record calls
	lists   int // List calls
	err     error
}

func (m *memStore) Record(_ context.Context, entries ...history.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records++
	if m.err != nil {
		return m.err
	}
	for _, e := range entries {
		m.entries = append([]history.Entry{e}, m.entries...)
	}
	m.total += int64(len(entries))
	return nil
}

func (m *memStore) List(_ context.Context, limit int64) ([]history.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if m.err != nil {
		return nil, m.err
	}
	out := m.entries
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return append([]history.Entry{}, out...), nil
}

func (m *memStore) Total(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return m.total, nil
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries, m.total = nil, 0
	return nil
}

func (m *memStore) setErr(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}
