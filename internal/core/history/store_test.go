package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/chefhat/internal/core/language"
)

// fakeClock returns successive millisecond instants starting at start.
func fakeClock(start int64) func() time.Time {
	ms := start
	return func() time.Time {
		t := time.UnixMilli(ms)
		ms++
		return t
	}
}

func timestamps(entries []Entry) []int64 {
	out := make([]int64, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Timestamp)
	}
	return out
}

func TestStore_InsertThenLoad(t *testing.T) {
	ctx := context.Background()
	port := NewMemoryPersister()
	store := NewStore(port, WithClock(fakeClock(1000)))
	store.Load(ctx)

	got, err := store.Insert(ctx, "tomatoes, cheese, eggs", "Recipe A...", language.English)
	require.NoError(t, err)
	require.Len(t, got, 1)

	reloaded := NewStore(port).Load(ctx)
	require.Len(t, reloaded, 1)
	assert.Equal(t, got[0], reloaded[0])
	assert.Equal(t, "tomatoes, cheese, eggs", reloaded[0].Ingredients)
	assert.Equal(t, "Recipe A...", reloaded[0].Response)
	assert.Equal(t, language.English, reloaded[0].Language)
	assert.Equal(t, int64(1000), reloaded[0].Timestamp)
}

func TestStore_InsertNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryPersister(), WithClock(fakeClock(1)))

	for i := range 3 {
		_, err := store.Insert(ctx, fmt.Sprintf("item %d", i), "r", language.English)
		require.NoError(t, err)
	}

	got := store.Entries()
	assert.Equal(t, []int64{3, 2, 1}, timestamps(got))
	assert.Equal(t, "item 2", got[0].Ingredients)
}

func TestStore_EvictsOldest(t *testing.T) {
	for _, n := range []int{6, 7, 12} {
		t.Run(fmt.Sprintf("%d inserts", n), func(t *testing.T) {
			ctx := context.Background()
			port := NewMemoryPersister()
			store := NewStore(port, WithClock(fakeClock(100)))

			for i := range n {
				_, err := store.Insert(ctx, fmt.Sprintf("item %d", i), "recipe", language.English)
				require.NoError(t, err)
			}

			persisted, err := port.Read(ctx)
			require.NoError(t, err)
			require.Len(t, persisted, MaxEntries)
			assert.Equal(t, store.Entries(), persisted)

			for i, e := range persisted {
				assert.Equal(t, int64(100+n-1-i), e.Timestamp)
			}
			for i := range n - MaxEntries {
				for _, e := range persisted {
					assert.NotEqual(t, fmt.Sprintf("item %d", i), e.Ingredients)
				}
			}
		})
	}
}

func TestStore_SixthInsertDropsEarliest(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryPersister(), WithClock(fakeClock(10)))

	var got []Entry
	for i := range 6 {
		var err error
		got, err = store.Insert(ctx, fmt.Sprintf("q%d", i), "r", language.Turkish)
		require.NoError(t, err)
	}

	assert.Equal(t, []int64{15, 14, 13, 12, 11}, timestamps(got))
}

func TestStore_SameMillisecondStaysUnique(t *testing.T) {
	ctx := context.Background()
	frozen := time.UnixMilli(5000)
	store := NewStore(NewMemoryPersister(), WithClock(func() time.Time { return frozen }))

	for range 3 {
		_, err := store.Insert(ctx, "eggs", "omelette", language.English)
		require.NoError(t, err)
	}

	assert.Equal(t, []int64{5002, 5001, 5000}, timestamps(store.Entries()))
}

func TestStore_InsertRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	port := NewMemoryPersister()
	store := NewStore(port)

	_, err := store.Insert(ctx, "  ", "text", language.English)
	assert.Error(t, err)
	_, err = store.Insert(ctx, "eggs", "", language.English)
	assert.Error(t, err)

	assert.Empty(t, store.Entries())
	assert.Equal(t, 0, port.Writes)
}

func TestStore_RemoveIdempotent(t *testing.T) {
	ctx := context.Background()
	port := NewMemoryPersister()
	store := NewStore(port, WithClock(fakeClock(1)))
	for _, ing := range []string{"a", "b", "c"} {
		_, err := store.Insert(ctx, ing, "r", language.English)
		require.NoError(t, err)
	}

	once, err := store.Remove(ctx, 2)
	require.NoError(t, err)
	twice, err := store.Remove(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Equal(t, []int64{3, 1}, timestamps(twice))

	persisted, err := port.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, twice, persisted)
}

func TestStore_Get(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryPersister(), WithClock(fakeClock(77)))
	_, err := store.Insert(ctx, "eggs", "omelette", language.English)
	require.NoError(t, err)

	got, err := store.Get(77)
	require.NoError(t, err)
	assert.Equal(t, "omelette", got.Response)

	_, err = store.Get(78)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	port := NewMemoryPersister()
	store := NewStore(port)
	_, err := store.Insert(ctx, "eggs", "omelette", language.English)
	require.NoError(t, err)

	got, err := store.Clear(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	persisted, err := port.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestStore_WriteFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	port := NewMemoryPersister()
	store := NewStore(port, WithClock(fakeClock(1)))
	_, err := store.Insert(ctx, "eggs", "omelette", language.English)
	require.NoError(t, err)

	port.WriteErr = errors.New("disk full")

	got, err := store.Insert(ctx, "rice", "pilaf", language.English)
	require.Error(t, err)
	assert.Equal(t, []int64{1}, timestamps(got))

	got, err = store.Remove(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, []int64{1}, timestamps(got))

	port.WriteErr = nil
	persisted, err := port.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.Entries(), persisted)
}

func TestStore_LoadFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()

	t.Run("read error", func(t *testing.T) {
		port := NewMemoryPersister()
		port.ReadErr = fmt.Errorf("parse: %w", ErrCorrupted)
		assert.Empty(t, NewStore(port).Load(ctx))
	})

	t.Run("no prior state", func(t *testing.T) {
		assert.Empty(t, NewStore(NewMemoryPersister()).Load(ctx))
	})

	t.Run("normalizes stored entries", func(t *testing.T) {
		port := NewMemoryPersister(
			Entry{Ingredients: "old", Response: "r", Timestamp: 1, Language: language.English},
			Entry{Ingredients: "new", Response: "r", Timestamp: 2, Language: language.English},
			Entry{Ingredients: "bad", Response: "", Timestamp: 3, Language: language.English},
		)
		got := NewStore(port).Load(ctx)
		assert.Equal(t, []int64{2, 1}, timestamps(got))
	})
}
