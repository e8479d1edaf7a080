package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/chefhat/internal/core/history"
	"github.com/hay-kot/chefhat/internal/core/language"
)

// Pinger reports backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StorageCheck verifies the history and language slots can be read.
type StorageCheck struct {
	driver    string
	location  string
	pinger    Pinger
	history   history.Persister
	languages language.Store
}

// NewStorageCheck creates a new storage check.
func NewStorageCheck(driver, location string, pinger Pinger, hist history.Persister, langs language.Store) *StorageCheck {
	return &StorageCheck{
		driver:    driver,
		location:  location,
		pinger:    pinger,
		history:   hist,
		languages: langs,
	}
}

func (c *StorageCheck) Name() string {
	return "Storage"
}

func (c *StorageCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.pinger != nil {
		if err := c.pinger.Ping(ctx); err != nil {
			result.add("Backend ("+c.driver+")", StatusFail, err.Error())
			return result
		}
	}
	result.add("Backend ("+c.driver+")", StatusPass, c.location)

	if c.history != nil {
		entries, err := c.history.Read(ctx)
		switch {
		case errors.Is(err, history.ErrCorrupted):
			result.add("History", StatusWarn, "unreadable, will be treated as empty: "+err.Error())
		case err != nil:
			result.add("History", StatusFail, err.Error())
		default:
			kept := len(history.Normalize(entries))
			detail := fmt.Sprintf("%d entries", kept)
			if dropped := len(entries) - kept; dropped > 0 {
				detail += fmt.Sprintf(" (%d invalid or excess ignored)", dropped)
			}
			result.add("History", StatusPass, detail)
		}
	}

	if c.languages != nil {
		code, err := c.languages.Language(ctx)
		switch {
		case errors.Is(err, language.ErrNotSet):
			result.add("Language", StatusPass, "not set, using default")
		case err != nil:
			result.add("Language", StatusWarn, err.Error())
		default:
			result.add("Language", StatusPass, code.Name())
		}
	}

	return result
}
