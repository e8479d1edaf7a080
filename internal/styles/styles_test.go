package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormTheme(t *testing.T) {
	theme := FormTheme()
	require.NotNil(t, theme)

	assert.Equal(t, ColorBlue, theme.Focused.Title.GetForeground())
	assert.Equal(t, ColorGray, theme.Blurred.Base.GetBorderTopForeground())
}
