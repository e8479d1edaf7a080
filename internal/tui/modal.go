package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Modal is a confirmation dialog.
type Modal struct {
	title           string
	message         string
	visible         bool
	confirmSelected bool
}

// NewModal creates a visible modal with the cancel button selected.
func NewModal(title, message string) Modal {
	return Modal{
		title:   title,
		message: message,
		visible: true,
	}
}

// ToggleSelection switches the selected button.
func (m *Modal) ToggleSelection() {
	m.confirmSelected = !m.confirmSelected
}

// ConfirmSelected reports whether the confirm button is selected.
func (m Modal) ConfirmSelected() bool {
	return m.confirmSelected
}

// Visible reports whether the modal should be displayed.
func (m Modal) Visible() bool {
	return m.visible
}

// Render draws the modal centered in a width x height area.
func (m Modal) Render(width, height int) string {
	confirmBtn, cancelBtn := modalButtonStyle.Render("Confirm"), modalButtonSelectedStyle.Render("Cancel")
	if m.confirmSelected {
		confirmBtn, cancelBtn = modalButtonSelectedStyle.Render("Confirm"), modalButtonStyle.Render("Cancel")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, confirmBtn, "  ", cancelBtn)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		modalTitleStyle.Render(m.title),
		"",
		m.message,
		lipgloss.NewStyle().MarginTop(1).Render(buttons),
		modalHelpStyle.Render("←/→ select  enter confirm  esc cancel"),
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modalStyle.Render(content))
}
