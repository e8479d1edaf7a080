package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/chefhat/internal/core/history"
)

// historyTimeLayout renders entry timestamps as dd.MM HH:mm.
const historyTimeLayout = "02.01 15:04"

// formatEntryTime formats an entry's creation time in local time.
func formatEntryTime(e history.Entry) string {
	return e.Time().Local().Format(historyTimeLayout)
}

// renderHistory draws the history panel. cursor is the selected row, or -1
// when the panel is not focused.
func renderHistory(title, empty string, entries []history.Entry, cursor, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if len(entries) == 0 {
		b.WriteString(helpStyle.Render(empty))
		return panelStyle.Width(width).Render(b.String())
	}

	inner := max(width-4, 10)
	for i, e := range entries {
		stamp := formatEntryTime(e)
		label := truncate(e.Ingredients, inner-len(stamp)-3)

		prefix, style := "  ", normalStyle
		if i == cursor {
			prefix, style = "> ", selectedStyle
		}

		b.WriteString(style.Render(prefix+label) + " " + timeStyle.Render(stamp))
		if i < len(entries)-1 {
			b.WriteString("\n")
		}
	}

	return panelStyle.Width(width).Render(b.String())
}

// truncate shortens s to width cells, adding an ellipsis when cut.
func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
