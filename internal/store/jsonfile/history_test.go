package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/chefhat/internal/core/history"
	"github.com/hay-kot/chefhat/internal/core/language"
)

func TestHistoryFile(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file is empty", func(t *testing.T) {
		f := NewHistoryFile(filepath.Join(t.TempDir(), "history.json"))

		entries, err := f.Read(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("write and read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "history.json")
		f := NewHistoryFile(path)

		want := []history.Entry{
			{Ingredients: "eggs", Response: "Omelette", Timestamp: 2, Language: language.English},
			{Ingredients: "domates", Response: "Menemen", Timestamp: 1, Language: language.Turkish},
		}
		require.NoError(t, f.Write(ctx, want))

		got, err := f.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
		require.NoError(t, err)
		assert.Empty(t, matches, "temp files should be renamed away")
	})

	t.Run("empty write stores an empty array", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")
		f := NewHistoryFile(path)

		require.NoError(t, f.Write(ctx, nil))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("corrupted file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")
		require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o644))

		_, err := NewHistoryFile(path).Read(ctx)
		assert.ErrorIs(t, err, history.ErrCorrupted)
	})

	t.Run("store falls back to empty on corruption", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

		store := history.NewStore(NewHistoryFile(path))
		assert.Empty(t, store.Load(ctx))

		_, err := store.Insert(ctx, "rice", "pilaf", language.English)
		require.NoError(t, err)

		reloaded := history.NewStore(NewHistoryFile(path)).Load(ctx)
		require.Len(t, reloaded, 1)
		assert.Equal(t, "rice", reloaded[0].Ingredients)
	})

	t.Run("reads records written by the original client", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")
		legacy := `[{"ingredients":"domates, peynir","recipes":"1. Menemen","timestamp":1718000000000}]`
		require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

		got, err := NewHistoryFile(path).Read(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "1. Menemen", got[0].Response)
		assert.Equal(t, language.Turkish, got[0].Language)
		assert.Equal(t, int64(1718000000000), got[0].Timestamp)
	})
}
