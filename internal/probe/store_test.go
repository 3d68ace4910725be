package probe_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vizctl/internal/probe"
)

func openTestStore(t *testing.T) *probe.Store {
	t.Helper()
	store, err := probe.Open(filepath.Join(t.TempDir(), "probes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecord(t *testing.T) {
	t.Run("fills in id and timestamp", func(t *testing.T) {
		store := openTestStore(t)

		p := &probe.Probe{Codeset: 5, Code: 17, Action: "KEYPRESS", Success: true, Detail: "HTTP 200"}
		require.NoError(t, store.Record(p))

		assert.NotZero(t, p.ID)
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("reopening keeps earlier probes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "probes.db")

		store, err := probe.Open(path)
		require.NoError(t, err)
		require.NoError(t, store.Record(&probe.Probe{Codeset: 11, Code: 1, Action: "KEYPRESS", Success: true}))
		require.NoError(t, store.Close())

		store, err = probe.Open(path)
		require.NoError(t, err)
		defer store.Close()

		probes, err := store.List(10)
		require.NoError(t, err)
		require.Len(t, probes, 1)
		assert.Equal(t, 11, probes[0].Codeset)
	})
}

func TestList(t *testing.T) {
	t.Run("returns newest first", func(t *testing.T) {
		store := openTestStore(t)

		for code := 0; code < 5; code++ {
			require.NoError(t, store.Record(&probe.Probe{Codeset: 5, Code: code, Action: "KEYPRESS"}))
		}

		probes, err := store.List(10)
		require.NoError(t, err)
		require.Len(t, probes, 5)
		assert.Equal(t, 4, probes[0].Code)
		assert.Equal(t, 0, probes[4].Code)
	})

	t.Run("honors the limit", func(t *testing.T) {
		store := openTestStore(t)

		for code := 0; code < 5; code++ {
			require.NoError(t, store.Record(&probe.Probe{Codeset: 5, Code: code, Action: "KEYPRESS"}))
		}

		probes, err := store.List(2)
		require.NoError(t, err)
		assert.Len(t, probes, 2)
	})

	t.Run("empty store lists nothing", func(t *testing.T) {
		store := openTestStore(t)
		probes, err := store.List(10)
		require.NoError(t, err)
		assert.Empty(t, probes)
	})
}

func TestSuccesses(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Record(&probe.Probe{Codeset: 5, Code: 1, Action: "KEYPRESS", Success: true}))
	require.NoError(t, store.Record(&probe.Probe{Codeset: 5, Code: 99, Action: "KEYPRESS", Success: false}))
	require.NoError(t, store.Record(&probe.Probe{Codeset: 11, Code: 1, Action: "KEYPRESS", Success: true}))

	probes, err := store.Successes(10)
	require.NoError(t, err)

	require.Len(t, probes, 2)
	for _, p := range probes {
		assert.True(t, p.Success)
	}
}
