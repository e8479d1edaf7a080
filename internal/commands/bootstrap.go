package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hay-kot/chefhat/internal/chef"
	"github.com/hay-kot/chefhat/internal/core/config"
	"github.com/hay-kot/chefhat/internal/core/history"
	"github.com/hay-kot/chefhat/internal/integration/gemini"
)

// Bootstrap loads the configuration, opens storage and builds the service
// into flags. With tolerant set, an invalid config or unreachable storage
// is recorded in ConfigErr and StorageErr instead of failing, so doctor can
// report it.
func Bootstrap(ctx context.Context, flags *Flags, tolerant bool) error {
	cfg, err := config.Parse(flags.ConfigPath, flags.DataDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		if !tolerant {
			return fmt.Errorf("load config: invalid config: %w", err)
		}
		flags.ConfigErr = err
	}
	flags.Config = cfg

	storage, err := OpenStorage(ctx, cfg)
	if err != nil {
		if tolerant {
			flags.StorageErr = err
			return nil
		}
		return err
	}
	flags.Storage = storage

	if flags.ConfigErr != nil {
		return nil
	}

	var (
		logger    = log.With().Str("component", "chef").Logger()
		generator = gemini.New(gemini.Options{
			APIKey:  cfg.APIKey(),
			BaseURL: cfg.Gemini.BaseURL,
			Model:   cfg.Gemini.Model,
			Timeout: cfg.Gemini.Timeout,
			Logger:  log.With().Str("component", "gemini").Logger(),
		})
		store = history.NewStore(storage.History,
			history.WithLogger(log.With().Str("component", "history").Logger()),
		)
	)

	flags.Service = chef.New(generator, store, storage.Languages, cfg.DefaultLanguage(), logger)
	flags.Service.Load(ctx)
	return nil
}
