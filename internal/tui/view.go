package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/chefhat/internal/styles"
)

func (m Model) viewWidth() int {
	if m.width == 0 {
		return 80
	}
	return m.width
}

// chrome returns everything drawn above the result area, and the footer.
func (m Model) chrome(width int) ([]string, string) {
	s := m.ctrl.Strings

	header := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.BannerStyle.Render(styles.Banner),
		titleStyle.Render(s.Title),
		subtitleStyle.Render(s.Subtitle),
		inputBoxStyle.Width(max(width-4, 10)).Render(m.input.View()),
		badgeStyle.Render(s.LanguageLabel+": "+m.ctrl.Language.Name())+"  "+helpStyle.Render("enter "+s.SubmitButton),
	)

	sections := []string{header}

	if m.focus == focusHistory {
		sections = append(sections, renderHistory(s.HistoryTitle, s.HistoryEmpty, m.ctrl.History, m.cursor, max(width-4, 20)))
	}

	if m.status != "" {
		sections = append(sections, errorStyle.Render(m.status))
	}

	bindings := keys.inputHelp()
	if m.focus == focusHistory {
		bindings = keys.historyHelp()
	}
	return sections, m.help.ShortHelpView(bindings)
}

// View implements tea.Model.
func (m Model) View() string {
	width := m.viewWidth()

	if m.modal.Visible() {
		return m.modal.Render(width, max(m.height, 12))
	}

	sections, footer := m.chrome(width)

	if m.ctrl.Loading {
		sections = append(sections, "\n"+m.spinner.View()+" "+m.ctrl.Strings.LoadingText)
	} else {
		sections = append(sections, m.viewport.View())
	}

	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}
