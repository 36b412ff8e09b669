package history_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akvaristik/aquamon/internal/history"
	"github.com/akvaristik/aquamon/internal/model"
)

var base = time.Unix(1700000000, 0)

func entryAt(ts time.Time) model.HistoryEntry {
	return model.HistoryEntry{Timestamp: ts.Unix(), TDS: 250}
}

func TestAddFirstEntryAlwaysKept(t *testing.T) {
	b := history.New(10, time.Minute)
	assert.True(t, b.Add(entryAt(base), base))
	assert.Equal(t, 1, b.Len())
}

func TestAddAppliesSamplingWindow(t *testing.T) {
	b := history.New(10, time.Minute)

	require.True(t, b.Add(entryAt(base), base))
	assert.False(t, b.Add(entryAt(base.Add(5*time.Second)), base.Add(5*time.Second)))
	assert.False(t, b.Add(entryAt(base.Add(59*time.Second)), base.Add(59*time.Second)))
	assert.Equal(t, 1, b.Len())

	assert.True(t, b.Add(entryAt(base.Add(time.Minute)), base.Add(time.Minute)))
	assert.Equal(t, 2, b.Len())
}

func TestAddWindowRestartsFromLastKept(t *testing.T) {
	b := history.New(10, time.Minute)

	require.True(t, b.Add(entryAt(base), base))

	// A rejected entry must not reset the window.
	assert.False(t, b.Add(entryAt(base.Add(30*time.Second)), base.Add(30*time.Second)))
	assert.True(t, b.Add(entryAt(base.Add(61*time.Second)), base.Add(61*time.Second)))
}

func TestEvictionDropsOldestFirst(t *testing.T) {
	b := history.New(5, time.Minute)

	for i := 0; i < 7; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		require.True(t, b.Add(entryAt(ts), ts))
	}

	entries := b.Entries()
	require.Len(t, entries, 5)

	// Entries one and two are gone; the third insert is now the oldest.
	assert.Equal(t, base.Add(2*time.Minute).Unix(), entries[0].Timestamp)
	assert.Equal(t, base.Add(6*time.Minute).Unix(), entries[4].Timestamp)

	// Chronological order is preserved.
	for i := 1; i < len(entries); i++ {
		assert.Greater(t, entries[i].Timestamp, entries[i-1].Timestamp)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	b := history.New(5, time.Minute)
	require.True(t, b.Add(entryAt(base), base))

	entries := b.Entries()
	entries[0].TDS = 9999

	assert.Equal(t, 250, b.Entries()[0].TDS)
}
