package doctor

import (
	"context"
	"errors"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/chefhat/internal/core/language"
)

// TranslationsCheck validates the display strings table.
type TranslationsCheck struct {
	table language.Table
}

// NewTranslationsCheck creates a new translations check.
func NewTranslationsCheck(table language.Table) *TranslationsCheck {
	return &TranslationsCheck{table: table}
}

func (c *TranslationsCheck) Name() string {
	return "Translations"
}

func (c *TranslationsCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	err := language.ValidateTable(c.table)
	if err == nil {
		for _, code := range language.All {
			result.add(code.Name(), StatusPass, "")
		}
		return result
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			result.add(fe.Field, StatusFail, fe.Err.Error())
		}
		return result
	}

	result.add("table", StatusFail, err.Error())
	return result
}
