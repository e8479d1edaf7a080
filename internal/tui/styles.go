// Package tui implements the Bubble Tea TUI for chefhat.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/chefhat/internal/styles"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.ColorBlue)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray).
			Italic(true)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.ColorWhite).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.ColorRed)

	helpStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(styles.ColorBlue)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.ColorBlue).
			Padding(0, 1)

	badgeStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Background(styles.ColorPanel).
			Foreground(styles.ColorWhite)
)

// History panel styles.
var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.ColorGray).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(styles.ColorBlue).
			Bold(true)

	normalStyle = lipgloss.NewStyle()

	timeStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray)
)

// Modal styles.
var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.ColorBlue).
			Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.ColorWhite)

	modalHelpStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray).
			MarginTop(1)

	modalButtonStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(styles.ColorPanel).
				Foreground(lipgloss.Color("#a9b1d6"))

	modalButtonSelectedStyle = lipgloss.NewStyle().
					Padding(0, 1).
					Background(styles.ColorBlue).
					Foreground(styles.ColorDark).
					Bold(true)
)
