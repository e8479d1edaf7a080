package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/chefhat/internal/core/history"
	"github.com/hay-kot/chefhat/internal/core/language"
	"github.com/hay-kot/chefhat/pkg/randid"
)

// newTestStore connects to the server named by CHEFHAT_TEST_REDIS_ADDR and
// isolates the test under a random key prefix.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	addr := os.Getenv("CHEFHAT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CHEFHAT_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	prefix := "chefhat-test-" + randid.Generate(8)

	s, err := New(ctx, Options{Addr: addr, Prefix: prefix})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.client.Del(ctx, s.historyKey(), s.languageKey()).Err()
		_ = s.Close()
	})
	return s
}

func TestKeys(t *testing.T) {
	s := NewWithClient(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "")
	defer s.Close() //nolint:errcheck

	assert.Equal(t, "chefhat:history", s.historyKey())
	assert.Equal(t, "chefhat:language", s.languageKey())
}

func TestNew_Unreachable(t *testing.T) {
	_, err := New(context.Background(), Options{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestStore_Entries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	want := []history.Entry{
		{Ingredients: "eggs", Response: "Omelette", Timestamp: 2, Language: language.English},
	}
	require.NoError(t, s.Write(ctx, want))

	got, err = s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_Corrupted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.client.Set(ctx, s.historyKey(), "garbage", 0).Err())

	_, err := s.Read(ctx)
	assert.ErrorIs(t, err, history.ErrCorrupted)
}

func TestStore_Language(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Language(ctx)
	assert.ErrorIs(t, err, language.ErrNotSet)

	require.NoError(t, s.SetLanguage(ctx, language.Turkish))
	got, err := s.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, language.Turkish, got)
}
