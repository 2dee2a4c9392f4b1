package notify_test

import (
	"path/filepath"
	"testing"
	"time"

	"grievgo/backend/internal/notify"

	"github.com/stretchr/testify/assert"
)

func TestMemorySeenStore(t *testing.T) {
	store := &notify.MemorySeenStore{}

	_, ok := store.LastNoticeSeen()
	assert.False(t, ok)

	marker := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)
	assert.NoError(t, store.SetLastNoticeSeen(marker))

	got, ok := store.LastNoticeSeen()
	assert.True(t, ok)
	assert.Equal(t, marker, got)
}

func TestFileSeenStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")

	store := &notify.FileSeenStore{Path: path}
	_, ok := store.LastNoticeSeen()
	assert.False(t, ok, "missing file means no marker")

	marker := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)
	assert.NoError(t, store.SetLastNoticeSeen(marker))

	// A fresh instance over the same path sees the marker.
	reopened := &notify.FileSeenStore{Path: path}
	got, ok := reopened.LastNoticeSeen()
	assert.True(t, ok)
	assert.True(t, got.Equal(marker))
}
