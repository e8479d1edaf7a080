// Package chef composes prompt construction, generation, history and the
// language preference into the operations the UI surfaces call.
package chef

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hay-kot/chefhat/internal/core/generate"
	"github.com/hay-kot/chefhat/internal/core/history"
	"github.com/hay-kot/chefhat/internal/core/language"
	"github.com/hay-kot/chefhat/internal/core/prompt"
	"github.com/hay-kot/chefhat/internal/core/validate"
)

// Suggestion is the result of a successful Suggest call.
type Suggestion struct {
	Ingredients string
	Response    string
	Language    language.Code
	History     []history.Entry
}

// Service orchestrates recipe suggestions.
type Service struct {
	generator generate.Generator
	history   *history.Store
	languages language.Store
	log       zerolog.Logger

	mu   sync.RWMutex
	lang language.Code
}

// New creates a Service. fallback is the language used until Load resolves
// the stored preference.
func New(
	gen generate.Generator,
	hist *history.Store,
	languages language.Store,
	fallback language.Code,
	log zerolog.Logger,
) *Service {
	if !fallback.Valid() {
		fallback = language.Default
	}
	return &Service{
		generator: gen,
		history:   hist,
		languages: languages,
		log:       log,
		lang:      fallback,
	}
}

// Load reads persisted history and the stored language preference. Missing
// or unreadable data falls back to empty history and the fallback language.
func (s *Service) Load(ctx context.Context) {
	s.history.Load(ctx)

	s.mu.Lock()
	s.lang = language.Resolve(ctx, s.languages, s.lang)
	s.mu.Unlock()

	s.log.Debug().
		Str("language", string(s.Language())).
		Int("history", len(s.history.Entries())).
		Msg("state loaded")
}

// Language returns the active language.
func (s *Service) Language() language.Code {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// SetLanguage persists code and makes it active.
func (s *Service) SetLanguage(ctx context.Context, code language.Code) error {
	if !code.Valid() {
		return fmt.Errorf("unsupported language %q", code)
	}

	if err := s.languages.SetLanguage(ctx, code); err != nil {
		return fmt.Errorf("save language: %w", err)
	}

	s.mu.Lock()
	s.lang = code
	s.mu.Unlock()

	s.log.Debug().Str("language", string(code)).Msg("language changed")
	return nil
}

// Generate validates ingredients, builds the prompt for lang and calls the
// generator once. It does not touch history.
func (s *Service) Generate(ctx context.Context, ingredients string, lang language.Code) (string, error) {
	if err := validate.Ingredients(ingredients); err != nil {
		return "", err
	}

	p := prompt.Build(ingredients, lang)
	s.log.Debug().
		Str("language", string(lang)).
		Int("prompt_length", len(p)).
		Msg("requesting suggestions")

	text, err := s.generator.Generate(ctx, p)
	if err != nil {
		s.log.Warn().
			Err(err).
			Str("kind", generate.KindOf(err).String()).
			Msg("generation failed")
		return "", err
	}

	return text, nil
}

// Record stores a successful generation and returns the updated history.
func (s *Service) Record(ctx context.Context, ingredients, response string, lang language.Code) ([]history.Entry, error) {
	entries, err := s.history.Insert(ctx, ingredients, response, lang)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to record history")
		return nil, err
	}
	return entries, nil
}

// Suggest generates suggestions in the active language and records them.
// When recording fails the generated text is still returned alongside the
// error.
func (s *Service) Suggest(ctx context.Context, ingredients string) (Suggestion, error) {
	lang := s.Language()

	text, err := s.Generate(ctx, ingredients, lang)
	if err != nil {
		return Suggestion{}, err
	}

	sug := Suggestion{Ingredients: ingredients, Response: text, Language: lang}

	entries, err := s.Record(ctx, ingredients, text, lang)
	if err != nil {
		sug.History = s.history.Entries()
		return sug, fmt.Errorf("record history: %w", err)
	}

	sug.History = entries
	return sug, nil
}

// History returns the stored entries, newest first.
func (s *Service) History() []history.Entry {
	return s.history.Entries()
}

// Entry returns the entry with the given timestamp.
func (s *Service) Entry(timestamp int64) (history.Entry, error) {
	return s.history.Get(timestamp)
}

// Remove deletes the entry with the given timestamp. Removing an unknown
// timestamp is a no-op.
func (s *Service) Remove(ctx context.Context, timestamp int64) ([]history.Entry, error) {
	entries, err := s.history.Remove(ctx, timestamp)
	if err != nil {
		return nil, fmt.Errorf("remove history entry: %w", err)
	}
	return entries, nil
}

// ClearHistory deletes every entry.
func (s *Service) ClearHistory(ctx context.Context) error {
	if _, err := s.history.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
