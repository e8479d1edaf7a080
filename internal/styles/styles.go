// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	ColorGreen  = lipgloss.Color("#9ece6a")
	ColorYellow = lipgloss.Color("#e0af68")
	ColorBlue   = lipgloss.Color("#7aa2f7")
	ColorRed    = lipgloss.Color("#f7768e")
	ColorGray   = lipgloss.Color("#565f89")
	ColorWhite  = lipgloss.Color("#c0caf5")
	ColorPanel  = lipgloss.Color("#3b4261")
	ColorDark   = lipgloss.Color("#1a1b26")
)

// MarkdownStyle is the glamour standard style used for recipe output.
const MarkdownStyle = "tokyo-night"

// Banner ASCII art for the header.
const Banner = `
 ╔═╗╦ ╦╔═╗╔═╗╦ ╦╔═╗╔╦╗
 ║  ╠═╣║╣ ╠╣ ╠═╣╠═╣ ║
 ╚═╝╩ ╩╚═╝╚  ╩ ╩╩ ╩ ╩ `

// BannerStyle styles the ASCII art banner.
var BannerStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Bold(true)

// HeaderStyle styles section headers in command output.
var HeaderStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Bold(true)

// MutedStyle styles secondary text such as timestamps.
var MutedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// DividerStyle styles horizontal dividers.
var DividerStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// FormTheme returns the huh theme used by interactive prompts.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(ColorBlue)
	t.Focused.Title = t.Focused.Title.Foreground(ColorBlue).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(ColorGray)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorGreen)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorGreen)
	t.Focused.Option = t.Focused.Option.Foreground(ColorWhite)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ColorRed)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorRed)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(ColorDark).Background(ColorBlue)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(ColorWhite).Background(ColorPanel)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderForeground(ColorGray)

	return t
}
