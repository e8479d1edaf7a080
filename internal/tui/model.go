package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/chefhat/internal/view"
)

type focus int

const (
	focusInput focus = iota
	focusHistory
)

// generationDoneMsg carries the result of a background generation call.
type generationDoneMsg struct {
	out view.Outcome
}

// Model is the Bubble Tea model for the TUI. Controller state is only
// mutated from Update; the generation call itself runs in a command.
type Model struct {
	ctx  context.Context
	ctrl *view.Controller

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	md       *markdownRenderer

	focus         focus
	cursor        int
	modal         Modal
	pendingRemove int64
	status        string

	width  int
	height int
}

// New creates a TUI model over ctrl.
func New(ctx context.Context, ctrl *view.Controller) Model {
	ti := textinput.New()
	ti.Placeholder = ctrl.Strings.InputPlaceholder
	ti.CharLimit = 500
	ti.Prompt = "› "
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	h := help.New()
	h.Styles.ShortKey = helpStyle
	h.Styles.ShortDesc = helpStyle
	h.Styles.ShortSeparator = helpStyle
	h.ShortSeparator = " • "

	m := Model{
		ctx:      ctx,
		ctrl:     ctrl,
		input:    ti,
		spinner:  s,
		viewport: viewport.New(80, 10),
		help:     h,
		md:       &markdownRenderer{},
	}
	m.input.SetValue(ctrl.Ingredients)
	m.refreshResult()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.layout()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 10)
		m.viewport.Width = msg.Width
		m.refreshResult()
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case generationDoneMsg:
		m.ctrl.Complete(m.ctx, msg.out)
		m.clampCursor()
		m.refreshResult()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	if m.modal.Visible() {
		return m.handleModalKey(msg)
	}

	if m.focus == focusHistory {
		return m.handleHistoryKey(msg)
	}

	return m.handleInputKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit):
		err := m.ctrl.Begin(m.input.Value())
		if errors.Is(err, view.ErrEmptyInput) || errors.Is(err, view.ErrBusy) {
			return m, nil
		}
		m.status = ""
		m.refreshResult()
		return m, tea.Batch(m.spinner.Tick, m.runGeneration())

	case key.Matches(msg, keys.History):
		m.focus = focusHistory
		m.cursor = 0
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Language):
		m.toggleLanguage()
		return m, nil

	case msg.String() == "pgup" || msg.String() == "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	entries := m.ctrl.History

	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.History):
		return m.closeHistory()

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(entries)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Load):
		if len(entries) == 0 {
			return m, nil
		}
		if err := m.ctrl.SelectHistory(entries[m.cursor].Timestamp); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.input.SetValue(m.ctrl.Ingredients)
		m.refreshResult()
		return m.closeHistory()

	case key.Matches(msg, keys.Remove):
		if len(entries) == 0 {
			return m, nil
		}
		m.pendingRemove = entries[m.cursor].Timestamp
		m.modal = NewModal(m.ctrl.Strings.HistoryTitle, m.ctrl.Strings.RemoveConfirm)

	case key.Matches(msg, keys.Language):
		m.toggleLanguage()
	}

	return m, nil
}

func (m Model) handleModalKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "h", "l", "tab":
		m.modal.ToggleSelection()

	case "esc":
		m.modal = Modal{}

	case "enter":
		if m.modal.ConfirmSelected() {
			if err := m.ctrl.RemoveHistory(m.ctx, m.pendingRemove); err != nil {
				log.Error().Err(err).Int64("timestamp", m.pendingRemove).Msg("failed to remove history entry")
				m.status = err.Error()
			}
			m.clampCursor()
		}
		m.modal = Modal{}
	}

	return m, nil
}

func (m Model) closeHistory() (Model, tea.Cmd) {
	m.focus = focusInput
	return m, m.input.Focus()
}

func (m *Model) toggleLanguage() {
	if err := m.ctrl.ToggleLanguage(m.ctx); err != nil {
		log.Error().Err(err).Msg("failed to change language")
		m.status = err.Error()
		return
	}
	m.input.Placeholder = m.ctrl.Strings.InputPlaceholder
	m.refreshResult()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.ctrl.History) {
		m.cursor = len(m.ctrl.History) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// runGeneration performs the request in a command so the UI stays live.
func (m Model) runGeneration() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return generationDoneMsg{out: ctrl.Run(ctx)}
	}
}

// refreshResult re-renders the result area into the viewport.
func (m *Model) refreshResult() {
	var content string
	switch {
	case m.ctrl.Failed:
		content = errorStyle.Render(m.ctrl.Result)
	case m.ctrl.Result != "":
		content = sectionStyle.Render(m.ctrl.Strings.SuggestedRecipes) + "\n" +
			m.md.render(m.ctrl.Result, m.viewport.Width-2)
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

// layout sizes the result viewport to the rows left under the header and
// above the footer, so paging matches what View draws.
func (m *Model) layout() {
	if m.height <= 0 || m.ctrl.Loading {
		return
	}
	sections, footer := m.chrome(m.viewWidth())
	used := lipgloss.Height(strings.Join(sections, "\n")) + lipgloss.Height(footer) + 1
	m.viewport.Height = max(m.height-used, 3)
	m.viewport.SetYOffset(m.viewport.YOffset)
}
