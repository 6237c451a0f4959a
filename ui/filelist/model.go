package filelist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/grepninja/internal/messages"
	"github.com/cheerioskun/grepninja/internal/models"
)

// Model lists the resolved sources of the current search
type Model struct {
	// Data
	entries  []models.Resolved
	readable int

	// UI state
	focused  bool
	width    int
	height   int
	viewport viewport.Model

	// Styles
	titleStyle lipgloss.Style
	fileStyle  lipgloss.Style
	errorStyle lipgloss.Style
	infoStyle  lipgloss.Style
	emptyStyle lipgloss.Style
}

// NewModel creates a new source list model
func NewModel() *Model {
	vp := viewport.New(40, 6) // Initial size, will be updated in SetSize
	vp.SetContent("")

	return &Model{
		entries:  make([]models.Resolved, 0),
		focused:  false,
		width:    40,
		height:   10,
		viewport: vp,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Margin(0, 0, 1, 0),

		fileStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")),

		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),

		infoStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Align(lipgloss.Right),

		emptyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case messages.SourcesResolvedMsg:
		m.SetEntries(msg.Entries)
		return m, nil

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		switch msg.String() {
		case "j", "down":
			m.viewport.LineDown(1)
		case "k", "up":
			m.viewport.LineUp(1)
		case "pgdown", " ":
			m.viewport.ViewDown()
		case "pgup":
			m.viewport.ViewUp()
		case "home", "g":
			m.viewport.GotoTop()
		case "end", "G":
			m.viewport.GotoBottom()
		}
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// SetEntries replaces the listed sources
func (m *Model) SetEntries(entries []models.Resolved) {
	m.entries = entries
	m.readable = models.CountReadable(entries)
	m.updateViewportContent()
}

// Entries returns the listed sources
func (m *Model) Entries() []models.Resolved {
	return m.entries
}

// View renders the component
func (m *Model) View() string {
	title := "Sources"
	if m.focused {
		title += " *"
	}
	header := m.titleStyle.Render(title)

	var content string
	if len(m.entries) == 0 {
		content = m.emptyStyle.Render("No sources")
	} else {
		content = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, m.renderSummary())
}

func (m *Model) updateViewportContent() {
	if len(m.entries) == 0 {
		m.viewport.SetContent(m.emptyStyle.Render("No sources"))
		return
	}

	var lines []string
	for _, entry := range m.entries {
		if !entry.Ok() {
			lines = append(lines, m.errorStyle.Render(truncate("✗ "+entry.Err.Error(), m.width)))
			continue
		}
		lines = append(lines, m.fileStyle.Render(truncate("  "+entry.Source.Name, m.width)))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func (m *Model) renderSummary() string {
	if len(m.entries) == 0 {
		return ""
	}

	scrollInfo := ""
	if m.viewport.Height > 0 {
		scrollInfo = fmt.Sprintf(" • %d/%d", m.viewport.YOffset+1, len(m.entries))
	}

	return m.infoStyle.Render(fmt.Sprintf("%d readable • %d errors%s",
		m.readable, len(m.entries)-m.readable, scrollInfo))
}

// Component interface methods

func (m *Model) Focus() {
	m.focused = true
}

func (m *Model) Blur() {
	m.focused = false
}

func (m *Model) IsFocused() bool {
	return m.focused
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	// Account for title (2 lines) and summary (1 line)
	viewportHeight := height - 3
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	m.viewport.Width = width
	m.viewport.Height = viewportHeight
	m.updateViewportContent()
}

func truncate(s string, width int) string {
	if width < 10 {
		width = 10
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
