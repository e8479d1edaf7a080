package doctor

import (
	"context"
	"errors"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/chefhat/internal/core/config"
)

// ConfigCheck validates the loaded configuration.
type ConfigCheck struct {
	config     *config.Config
	configPath string
}

// NewConfigCheck creates a new configuration check.
func NewConfigCheck(cfg *config.Config, configPath string) *ConfigCheck {
	return &ConfigCheck{
		config:     cfg,
		configPath: configPath,
	}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.config == nil {
		result.add("Config loaded", StatusFail, "configuration not loaded")
		return result
	}

	if c.configPath != "" {
		if _, err := os.Stat(c.configPath); err != nil {
			result.add("Config file", StatusWarn, c.configPath+" not found, using defaults")
		} else {
			result.add("Config file", StatusPass, c.configPath)
		}
	}

	err := c.config.Validate()
	if err == nil {
		result.add("Config valid", StatusPass, "")
		return result
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			label := fe.Field
			if label == "" {
				label = "validation"
			}
			result.add(label, StatusFail, fe.Err.Error())
		}
		return result
	}

	result.add("validation", StatusFail, err.Error())
	return result
}
