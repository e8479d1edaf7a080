// Package view holds the UI-agnostic presentation state shared by the
// terminal UI and tests.
package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/chefhat/internal/chef"
	"github.com/hay-kot/chefhat/internal/core/history"
	"github.com/hay-kot/chefhat/internal/core/language"
	"github.com/hay-kot/chefhat/internal/core/validate"
)

// ErrEmptyInput is returned by Begin for blank ingredients.
var ErrEmptyInput = validate.ErrEmptyInput

// ErrBusy is returned by Begin while a request is in flight.
var ErrBusy = errors.New("a request is already in progress")

// Outcome is the result of Run, applied to the state by Complete.
type Outcome struct {
	Ingredients string
	Language    language.Code
	Response    string
	Err         error
}

// Controller owns the view state. State fields are read by renderers;
// mutation happens only through methods, which must be called from a single
// goroutine. Run is the exception and may execute elsewhere.
type Controller struct {
	Loading     bool
	Ingredients string
	Result      string
	// Failed reports that Result holds the localized error message.
	Failed   bool
	History  []history.Entry
	Language language.Code
	Strings  language.Strings

	svc          *chef.Service
	translations language.Table
	log          zerolog.Logger
	pending      Outcome
}

// New creates a Controller reflecting the service's current state.
func New(svc *chef.Service, translations language.Table, log zerolog.Logger) *Controller {
	c := &Controller{
		svc:          svc,
		translations: translations,
		log:          log,
	}
	c.Language = svc.Language()
	c.Strings = translations.For(c.Language)
	c.History = svc.History()
	return c
}

// Begin starts a submission. Blank input returns ErrEmptyInput and a
// submission while loading returns ErrBusy; neither changes state.
func (c *Controller) Begin(ingredients string) error {
	if c.Loading {
		return ErrBusy
	}
	if err := validate.Ingredients(ingredients); err != nil {
		return err
	}

	c.Loading = true
	c.Ingredients = ingredients
	c.Result = ""
	c.Failed = false
	c.pending = Outcome{Ingredients: ingredients, Language: c.Language}
	return nil
}

// Run performs the generation call for the submission started by Begin.
// It reads the pending request but does not modify the Controller.
func (c *Controller) Run(ctx context.Context) Outcome {
	out := c.pending
	out.Response, out.Err = c.svc.Generate(ctx, out.Ingredients, out.Language)
	return out
}

// Complete applies out to the state. Loading is always cleared.
func (c *Controller) Complete(ctx context.Context, out Outcome) {
	defer func() { c.Loading = false }()

	if out.Err != nil {
		c.Result = c.Strings.ErrorMessage
		c.Failed = true
		return
	}

	c.Result = out.Response
	c.Failed = false

	entries, err := c.svc.Record(ctx, out.Ingredients, out.Response, out.Language)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to save history")
		return
	}
	c.History = entries
}

// Submit runs a full submission synchronously.
func (c *Controller) Submit(ctx context.Context, ingredients string) error {
	if err := c.Begin(ingredients); err != nil {
		return err
	}
	out := c.Run(ctx)
	c.Complete(ctx, out)
	return out.Err
}

// SelectHistory loads a stored entry into the input and result.
func (c *Controller) SelectHistory(timestamp int64) error {
	entry, err := c.svc.Entry(timestamp)
	if err != nil {
		return err
	}
	c.Ingredients = entry.Ingredients
	c.Result = entry.Response
	c.Failed = false
	return nil
}

// RemoveHistory deletes a stored entry.
func (c *Controller) RemoveHistory(ctx context.Context, timestamp int64) error {
	entries, err := c.svc.Remove(ctx, timestamp)
	if err != nil {
		return err
	}
	c.History = entries
	return nil
}

// SetLanguage switches the active language and display strings.
func (c *Controller) SetLanguage(ctx context.Context, code language.Code) error {
	if err := c.svc.SetLanguage(ctx, code); err != nil {
		return fmt.Errorf("set language: %w", err)
	}
	c.Language = code
	c.Strings = c.translations.For(code)
	return nil
}

// ToggleLanguage cycles to the next supported language.
func (c *Controller) ToggleLanguage(ctx context.Context) error {
	return c.SetLanguage(ctx, c.Language.Next())
}
