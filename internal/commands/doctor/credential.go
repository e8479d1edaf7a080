package doctor

import (
	"context"
	"fmt"

	"github.com/hay-kot/chefhat/internal/core/config"
)

// CredentialCheck reports whether the generation credential is available.
// A missing key is a warning: the app starts but every suggestion fails.
type CredentialCheck struct {
	config *config.Config
}

// NewCredentialCheck creates a new credential check.
func NewCredentialCheck(cfg *config.Config) *CredentialCheck {
	return &CredentialCheck{config: cfg}
}

func (c *CredentialCheck) Name() string {
	return "Credentials"
}

func (c *CredentialCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.config == nil {
		result.add("API key", StatusFail, "configuration not loaded")
		return result
	}

	env := c.config.Gemini.APIKeyEnv
	if c.config.APIKey() == "" {
		result.add("API key", StatusWarn, fmt.Sprintf("%s is not set; suggestions will fail", env))
		return result
	}

	result.add("API key", StatusPass, env+" is set")
	result.add("Model", StatusPass, c.config.Gemini.Model)
	return result
}
