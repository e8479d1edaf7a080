package view

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/chefhat/internal/chef"
	"github.com/hay-kot/chefhat/internal/core/generate"
	"github.com/hay-kot/chefhat/internal/core/history"
	"github.com/hay-kot/chefhat/internal/core/language"
)

type stubGenerator struct {
	calls int
	text  string
	err   error
}

func (g *stubGenerator) Generate(context.Context, string) (string, error) {
	g.calls++
	return g.text, g.err
}

func newController(t *testing.T, gen *stubGenerator, lang language.Code) (*Controller, *history.MemoryPersister) {
	t.Helper()

	persister := history.NewMemoryPersister()
	svc := chef.New(gen, history.NewStore(persister), language.NewMemoryStore(lang), language.English, zerolog.Nop())
	svc.Load(context.Background())

	return New(svc, language.Translations, zerolog.Nop()), persister
}

func TestController_SubmitSuccess(t *testing.T) {
	ctx := context.Background()
	gen := &stubGenerator{text: "Recipe A..."}
	c, _ := newController(t, gen, "")

	require.NoError(t, c.Submit(ctx, "tomatoes, cheese, eggs"))

	assert.False(t, c.Loading)
	assert.False(t, c.Failed)
	assert.Equal(t, "Recipe A...", c.Result)
	assert.Equal(t, "tomatoes, cheese, eggs", c.Ingredients)
	require.Len(t, c.History, 1)
	assert.Equal(t, language.English, c.History[0].Language)
	assert.Equal(t, "Recipe A...", c.History[0].Response)
}

func TestController_BlankInput(t *testing.T) {
	ctx := context.Background()
	gen := &stubGenerator{text: "unused"}
	c, persister := newController(t, gen, "")
	c.Result = "previous"

	err := c.Submit(ctx, "  ")
	require.ErrorIs(t, err, ErrEmptyInput)

	assert.Zero(t, gen.calls)
	assert.Zero(t, persister.Writes)
	assert.False(t, c.Loading)
	assert.Equal(t, "previous", c.Result, "state is untouched")
	assert.Empty(t, c.History)
}

func TestController_FailureShowsLocalizedMessage(t *testing.T) {
	tests := []struct {
		name string
		lang language.Code
		want string
	}{
		{"english", language.English, "Sorry, an error occurred. Please try again later."},
		{"turkish", language.Turkish, "Üzgünüm, bir hata oluştu. Lütfen daha sonra tekrar deneyin."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			gen := &stubGenerator{err: generate.Errorf(generate.KindService, "quota exceeded")}
			c, persister := newController(t, gen, tt.lang)

			err := c.Submit(ctx, "rice")
			require.Error(t, err)

			assert.True(t, c.Failed)
			assert.Equal(t, tt.want, c.Result)
			assert.False(t, c.Loading)
			assert.Empty(t, c.History)
			assert.Zero(t, persister.Writes)
		})
	}
}

func TestController_BeginWhileLoading(t *testing.T) {
	c, _ := newController(t, &stubGenerator{text: "x"}, "")

	require.NoError(t, c.Begin("eggs"))
	assert.True(t, c.Loading)
	assert.Empty(t, c.Result)

	assert.ErrorIs(t, c.Begin("milk"), ErrBusy)
	assert.Equal(t, "eggs", c.Ingredients)
}

func TestController_RunDoesNotMutate(t *testing.T) {
	ctx := context.Background()
	c, _ := newController(t, &stubGenerator{text: "Omelette"}, "")

	require.NoError(t, c.Begin("eggs"))
	out := c.Run(ctx)

	assert.True(t, c.Loading)
	assert.Empty(t, c.Result)
	assert.Empty(t, c.History)
	assert.Equal(t, "Omelette", out.Response)
	assert.Equal(t, "eggs", out.Ingredients)
	assert.Equal(t, language.English, out.Language)

	c.Complete(ctx, out)
	assert.False(t, c.Loading)
	assert.Equal(t, "Omelette", c.Result)
	assert.Len(t, c.History, 1)
}

func TestController_PersistenceFailureStillShowsResult(t *testing.T) {
	ctx := context.Background()
	c, persister := newController(t, &stubGenerator{text: "Soup"}, "")
	persister.WriteErr = errors.New("disk full")

	require.NoError(t, c.Submit(ctx, "carrots"))
	assert.Equal(t, "Soup", c.Result)
	assert.False(t, c.Failed)
	assert.False(t, c.Loading)
	assert.Empty(t, c.History)
}

func TestController_HistoryAndLanguage(t *testing.T) {
	ctx := context.Background()
	gen := &stubGenerator{text: "first"}
	c, _ := newController(t, gen, "")

	require.NoError(t, c.Submit(ctx, "a"))
	gen.text = "second"
	require.NoError(t, c.Submit(ctx, "b"))
	require.Len(t, c.History, 2)

	older := c.History[1]
	require.NoError(t, c.SelectHistory(older.Timestamp))
	assert.Equal(t, "a", c.Ingredients)
	assert.Equal(t, "first", c.Result)

	assert.ErrorIs(t, c.SelectHistory(12345), history.ErrNotFound)

	require.NoError(t, c.RemoveHistory(ctx, older.Timestamp))
	require.Len(t, c.History, 1)
	assert.Equal(t, "b", c.History[0].Ingredients)

	require.NoError(t, c.ToggleLanguage(ctx))
	assert.Equal(t, language.Turkish, c.Language)
	assert.Equal(t, language.Translations[language.Turkish].Title, c.Strings.Title)

	require.NoError(t, c.SetLanguage(ctx, language.English))
	assert.Equal(t, language.Translations[language.English], c.Strings)

	assert.Error(t, c.SetLanguage(ctx, language.Code("zz")))
	assert.Equal(t, language.English, c.Language)
}
