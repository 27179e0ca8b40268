package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edirooss/urlparts/pkg/hostutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestURLService(store HistoryStore) *URLService {
	s := NewURLService(zap.NewNop(), store)
	s.now = func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) }
	s.newID = func() string { return "id-1" }
	return s
}

func TestURLServiceParse(t *testing.T) {
	store := &memStore{}
	s := newTestURLService(store)

	parts, err := s.Parse(context.Background(), " https://www.example.com/a?b=c ", true)
	require.NoError(t, err)
	require.NotNil(t, parts.Host)
	assert.Equal(t, "www.example.com", *parts.Host)

	require.Len(t, store.entries, 1)
	e := store.entries[0]
	assert.Equal(t, "id-1", e.ID)
	assert.Equal(t, " https://www.example.com/a?b=c ", e.Input)
	assert.Equal(t, parts, e.Parts)
	require.NotNil(t, e.Valid)
	assert.True(t, *e.Valid)
}

func TestURLServiceParseInvalidHost(t *testing.T) {
	store := &memStore{}
	s := newTestURLService(store)

	_, err := s.Parse(context.Background(), "https://bad_host.example/", true)
	assert.ErrorIs(t, err, ErrInvalidHost)
	assert.ErrorIs(t, err, hostutil.ErrBadHost)

	require.Len(t, store.entries, 1)
	require.NotNil(t, store.entries[0].Valid)
	assert.False(t, *store.entries[0].Valid)

	// raw mode never rejects
	parts, err := s.Parse(context.Background(), "https://bad_host.example/", false)
	require.NoError(t, err)
	assert.Equal(t, "bad_host.example", *parts.Host)
	assert.Nil(t, store.entries[0].Valid)
}

func TestURLServiceParseAbsentHostIsValid(t *testing.T) {
	s := newTestURLService(nil)

	parts, err := s.Parse(context.Background(), "https:///only/path", true)
	require.NoError(t, err)
	assert.Nil(t, parts.Host)
}

func TestURLServiceRecordFailureIsNotReturned(t *testing.T) {
	store := &memStore{err: errors.New("connection refused")}
	core, logs := observer.New(zap.WarnLevel)
	s := NewURLService(zap.New(core), store)

	_, err := s.Parse(context.Background(), "http://h/", false)
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("history record failed").Len())
}

func TestURLServiceParseBatch(t *testing.T) {
	store := &memStore{}
	s := newTestURLService(store)

	out := s.ParseBatch(context.Background(), []string{"http://a/", "ftp://b/x", "c"})
	require.Len(t, out, 3)
	assert.Equal(t, "ftp", *out[1].Protocol)
	assert.Equal(t, "c", *out[2].Host)

	assert.Equal(t, 1, store.records)
	require.Len(t, store.entries, 3)
	assert.Equal(t, "c", store.entries[0].Input)
}

func TestURLServiceHistory(t *testing.T) {
	_, err := newTestURLService(nil).History(context.Background(), 10)
	assert.ErrorIs(t, err, ErrHistoryUnavailable)
	assert.ErrorIs(t, newTestURLService(nil).ClearHistory(context.Background()), ErrHistoryUnavailable)

	store := &memStore{}
	s := newTestURLService(store)
	s.ParseBatch(context.Background(), []string{"a", "b", "c"})

	entries, err := s.History(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].Input)

	require.NoError(t, s.ClearHistory(context.Background()))
	entries, err = s.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)

	boom := errors.New("boom")
	store.setErr(boom)
	_, err = s.History(context.Background(), 0)
	assert.ErrorIs(t, err, ErrHistoryUnavailable)
	assert.ErrorIs(t, err, boom)
}
