package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAt(t *testing.T, now *time.Time) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "responses.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	s.now = func() time.Time { return *now }
	return s
}

func TestGet_FreshAndStale(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := openAt(t, &now)

	require.NoError(t, s.Put("fp-1", []byte(`{"total":0}`)))

	// Fresh at minute 10 with a 15 minute TTL.
	now = now.Add(10 * time.Minute)
	payload, ok, err := s.Get("fp-1", 15*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"total":0}`), payload)

	// Expired at minute 20: Get misses, GetStale still serves it.
	now = now.Add(10 * time.Minute)
	_, ok, err = s.Get("fp-1", 15*time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	payload, ok, err = s.GetStale("fp-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"total":0}`), payload)
}

func TestGet_Missing(t *testing.T) {
	now := time.Now()
	s := openAt(t, &now)

	_, ok, err := s.Get("nope", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.GetStale("nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPut_Overwrites(t *testing.T) {
	now := time.Now()
	s := openAt(t, &now)

	require.NoError(t, s.Put("fp-1", []byte("old")))
	now = now.Add(time.Hour)
	require.NoError(t, s.Put("fp-1", []byte("new")))

	payload, ok, err := s.Get("fp-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "overwrite refreshes stored_at")
	assert.Equal(t, []byte("new"), payload)
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "responses.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("fp", []byte("x")))
}
