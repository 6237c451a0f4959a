package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/grepninja/internal/messages"
	"github.com/cheerioskun/grepninja/internal/models"
)

// Styling constants
var (
	primaryColor   = lipgloss.Color("205")
	secondaryColor = lipgloss.Color("240")
	successColor   = lipgloss.Color("46")
	errorColor     = lipgloss.Color("196")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	flagOnStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1)

	flagOffStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	countStyle = lipgloss.NewStyle().
			Foreground(successColor)
)

// Runner executes a search and reports its outcome as a SearchCompletedMsg.
// seq is echoed back so the model can drop results of superseded runs.
type Runner func(seq int, req messages.PatternChangedMsg) messages.SearchCompletedMsg

// Model is the pattern editor and result panel
type Model struct {
	input    textinput.Model
	viewport viewport.Model
	runner   Runner

	// Search flags
	ignoreCase bool
	invert     bool
	count      bool

	// Last completed search
	seq         int
	output      string
	diagnostics []string
	err         error
	summary     models.Summary

	focused bool
	width   int
	height  int
}

// NewModel creates a search model seeded with an initial pattern and flags
func NewModel(runner Runner, initial messages.PatternChangedMsg) *Model {
	input := textinput.New()
	input.Placeholder = "Enter regex pattern..."
	input.CharLimit = 256
	input.SetValue(initial.Pattern)

	return &Model{
		input:      input,
		viewport:   viewport.New(40, 10),
		runner:     runner,
		ignoreCase: initial.IgnoreCase,
		invert:     initial.Invert,
		count:      initial.Count,
		width:      40,
		height:     20,
	}
}

// Init starts the first search
func (m *Model) Init() tea.Cmd {
	return m.searchCmd()
}

// Update handles messages for the search panel
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case messages.SearchCompletedMsg:
		if msg.Seq != m.seq {
			return m, nil // Superseded by a newer edit
		}
		m.applyResult(msg)
		return m, nil

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+t":
			m.ignoreCase = !m.ignoreCase
			return m, m.searchCmd()
		case "ctrl+v":
			m.invert = !m.invert
			return m, m.searchCmd()
		case "ctrl+n":
			m.count = !m.count
			return m, m.searchCmd()
		case "up", "down", "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			return m, tea.Batch(cmd, m.searchCmd())
		}
		return m, cmd
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the search panel
func (m *Model) View() string {
	title := "Search"
	if m.focused {
		title += " *"
	}

	sections := []string{
		headerStyle.Render(title),
		inputStyle.Width(max(m.width-4, 10)).Render(m.input.View()),
		m.renderFlags(),
	}

	switch {
	case m.err != nil:
		sections = append(sections, errorStyle.Render("✗ "+m.err.Error()))
	case m.output == "":
		sections = append(sections, helpStyle.Render("No matching lines"))
	default:
		sections = append(sections, m.viewport.View())
	}

	if len(m.diagnostics) > 0 {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("%d source errors (first: %s)",
			len(m.diagnostics), m.diagnostics[0])))
	}

	sections = append(sections, helpStyle.Render("ctrl+t: ignore case • ctrl+v: invert • ctrl+n: count • ↑/↓: scroll"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderFlags() string {
	flag := func(label string, on bool) string {
		if on {
			return flagOnStyle.Render(label)
		}
		return flagOffStyle.Render(label)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		flag("ignore-case", m.ignoreCase),
		flag("invert", m.invert),
		flag("count", m.count),
		countStyle.Render(fmt.Sprintf("  %d lines", m.summary.MatchedLines)),
	)
}

// searchCmd issues a new search for the current pattern and flags
func (m *Model) searchCmd() tea.Cmd {
	m.seq++
	seq := m.seq
	req := m.Request()
	runner := m.runner

	if runner == nil {
		return nil
	}
	return func() tea.Msg {
		return runner(seq, req)
	}
}

func (m *Model) applyResult(msg messages.SearchCompletedMsg) {
	m.err = msg.Err
	m.output = msg.Output
	m.diagnostics = msg.Diagnostics
	if msg.Err == nil {
		m.summary = msg.Summary
	}
	m.viewport.SetContent(strings.TrimSuffix(m.output, "\n"))
	m.viewport.GotoTop()
}

// Rerun repeats the current search, e.g. after the sources changed
func (m *Model) Rerun() tea.Cmd {
	return m.searchCmd()
}

// Request returns the current pattern and flags
func (m *Model) Request() messages.PatternChangedMsg {
	return messages.PatternChangedMsg{
		Pattern:    m.input.Value(),
		IgnoreCase: m.ignoreCase,
		Invert:     m.invert,
		Count:      m.count,
	}
}

// Output returns the text of the last completed search
func (m *Model) Output() string {
	return m.output
}

// Summary returns the tally of the last search that compiled
func (m *Model) Summary() models.Summary {
	return m.summary
}

// Err returns the fatal error of the last completed search, if any
func (m *Model) Err() error {
	return m.err
}

// Component interface methods

func (m *Model) Focus() {
	m.focused = true
	m.input.Focus()
}

func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
}

func (m *Model) IsFocused() bool {
	return m.focused
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	// Title, bordered input (3), flags, diagnostics and help
	viewportHeight := height - 8
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	m.viewport.Width = width
	m.viewport.Height = viewportHeight
}
