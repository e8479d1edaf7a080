package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/hay-kot/chefhat/internal/styles"
)

// markdownRenderer caches a glamour renderer for the current wrap width.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

func (r *markdownRenderer) render(text string, width int) string {
	if width < 20 {
		width = 20
	}

	if r.renderer == nil || r.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(styles.MarkdownStyle),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return text
		}
		r.renderer = renderer
		r.width = width
	}

	out, err := r.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
