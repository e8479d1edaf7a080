package chef

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/chefhat/internal/core/generate"
	"github.com/hay-kot/chefhat/internal/core/history"
	"github.com/hay-kot/chefhat/internal/core/language"
	"github.com/hay-kot/chefhat/internal/core/validate"
)

type recorder struct {
	calls   int
	prompts []string
	text    string
	err     error
}

func (r *recorder) Generate(_ context.Context, prompt string) (string, error) {
	r.calls++
	r.prompts = append(r.prompts, prompt)
	return r.text, r.err
}

type fixture struct {
	svc       *Service
	gen       *recorder
	persister *history.MemoryPersister
	langs     *language.MemoryStore
}

func newFixture(t *testing.T, gen *recorder) fixture {
	t.Helper()

	persister := history.NewMemoryPersister()
	langs := language.NewMemoryStore("")
	svc := New(gen, history.NewStore(persister), langs, language.English, zerolog.Nop())
	svc.Load(context.Background())

	return fixture{svc: svc, gen: gen, persister: persister, langs: langs}
}

func TestService_SuggestSuccess(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &recorder{text: "Recipe A..."})

	sug, err := f.svc.Suggest(ctx, "tomatoes, cheese, eggs")
	require.NoError(t, err)

	assert.Equal(t, "Recipe A...", sug.Response)
	assert.Equal(t, language.English, sug.Language)
	require.Len(t, sug.History, 1)
	assert.Equal(t, "tomatoes, cheese, eggs", sug.History[0].Ingredients)
	assert.Equal(t, "Recipe A...", sug.History[0].Response)
	assert.Equal(t, language.English, sug.History[0].Language)

	require.Len(t, f.gen.prompts, 1)
	assert.Equal(t,
		"My ingredients are: tomatoes, cheese, eggs. Please suggest 3 recipes that can be made with these ingredients and write a short recipe for each. Please respond in English.",
		f.gen.prompts[0])
}

func TestService_BlankInputMakesNoCall(t *testing.T) {
	ctx := context.Background()

	for _, in := range []string{"", "   ", "\t\n"} {
		f := newFixture(t, &recorder{text: "unused"})

		_, err := f.svc.Suggest(ctx, in)
		require.ErrorIs(t, err, validate.ErrEmptyInput)
		assert.Zero(t, f.gen.calls)
		assert.Empty(t, f.svc.History())
		assert.Zero(t, f.persister.Writes)
	}
}

func TestService_FailureLeavesHistoryUnchanged(t *testing.T) {
	ctx := context.Background()
	gen := &recorder{text: "first"}
	f := newFixture(t, gen)

	_, err := f.svc.Suggest(ctx, "rice")
	require.NoError(t, err)
	before := f.svc.History()

	gen.err = generate.Errorf(generate.KindNetwork, "dial tcp: refused")
	_, err = f.svc.Suggest(ctx, "beans")
	require.Error(t, err)
	assert.Equal(t, generate.KindNetwork, generate.KindOf(err))

	assert.Equal(t, before, f.svc.History())
	assert.Equal(t, 1, f.persister.Writes)
}

func TestService_RecordFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &recorder{text: "soup"})
	f.persister.WriteErr = errors.New("disk full")

	sug, err := f.svc.Suggest(ctx, "carrots")
	require.Error(t, err)
	assert.Equal(t, "soup", sug.Response, "generated text is kept")
	assert.Empty(t, sug.History)
	assert.Empty(t, f.svc.History())
}

func TestService_Language(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves stored preference on load", func(t *testing.T) {
		langs := language.NewMemoryStore(language.Turkish)
		svc := New(&recorder{}, history.NewStore(history.NewMemoryPersister()), langs, language.English, zerolog.Nop())
		assert.Equal(t, language.English, svc.Language())

		svc.Load(ctx)
		assert.Equal(t, language.Turkish, svc.Language())
	})

	t.Run("set persists", func(t *testing.T) {
		gen := &recorder{text: "Menemen"}
		f := newFixture(t, gen)

		require.NoError(t, f.svc.SetLanguage(ctx, language.Turkish))
		assert.Equal(t, language.Turkish, f.svc.Language())

		stored, err := f.langs.Language(ctx)
		require.NoError(t, err)
		assert.Equal(t, language.Turkish, stored)

		sug, err := f.svc.Suggest(ctx, "domates")
		require.NoError(t, err)
		assert.Equal(t, language.Turkish, sug.History[0].Language)
		assert.Contains(t, gen.prompts[0], "Lütfen Türkçe yanıt ver.")
	})

	t.Run("unsupported code", func(t *testing.T) {
		f := newFixture(t, &recorder{})
		assert.Error(t, f.svc.SetLanguage(ctx, language.Code("de")))
		assert.Equal(t, language.English, f.svc.Language())
	})

	t.Run("write failure keeps active language", func(t *testing.T) {
		f := newFixture(t, &recorder{})
		f.langs.WriteErr = errors.New("read-only")

		assert.Error(t, f.svc.SetLanguage(ctx, language.Turkish))
		assert.Equal(t, language.English, f.svc.Language())
	})

	t.Run("invalid fallback uses default", func(t *testing.T) {
		svc := New(&recorder{}, history.NewStore(history.NewMemoryPersister()), nil, language.Code("xx"), zerolog.Nop())
		assert.Equal(t, language.Default, svc.Language())
	})
}

func TestService_HistoryOperations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &recorder{text: "dish"})

	for _, in := range []string{"a", "b", "c"} {
		_, err := f.svc.Suggest(ctx, in)
		require.NoError(t, err)
	}

	entries := f.svc.History()
	require.Len(t, entries, 3)

	got, err := f.svc.Entry(entries[1].Timestamp)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Ingredients)

	_, err = f.svc.Entry(-1)
	assert.ErrorIs(t, err, history.ErrNotFound)

	remaining, err := f.svc.Remove(ctx, entries[1].Timestamp)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, "c", remaining[0].Ingredients)
	assert.Equal(t, "a", remaining[1].Ingredients)

	again, err := f.svc.Remove(ctx, entries[1].Timestamp)
	require.NoError(t, err)
	assert.Equal(t, remaining, again)

	require.NoError(t, f.svc.ClearHistory(ctx))
	assert.Empty(t, f.svc.History())
}

func TestService_GenerateDoesNotRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &recorder{text: "Salad"})

	text, err := f.svc.Generate(ctx, "lettuce", language.Turkish)
	require.NoError(t, err)
	assert.Equal(t, "Salad", text)
	assert.Empty(t, f.svc.History())
	assert.Contains(t, f.gen.prompts[0], "Elimdeki malzemeler: lettuce.")
}
