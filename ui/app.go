package ui

import (
	"bytes"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/grepninja/internal/config"
	"github.com/cheerioskun/grepninja/internal/messages"
	"github.com/cheerioskun/grepninja/internal/models"
	"github.com/cheerioskun/grepninja/internal/scanner"
	"github.com/cheerioskun/grepninja/internal/search"
	"github.com/cheerioskun/grepninja/ui/filelist"
	searchui "github.com/cheerioskun/grepninja/ui/search"
	"github.com/spf13/afero"
)

// FocusedPanel represents which panel is currently focused
type FocusedPanel int

const (
	SearchPanel FocusedPanel = iota
	SourcesPanel
)

// AppModel represents the main application model
type AppModel struct {
	// Components
	search  *searchui.Model
	sources *filelist.Model
	resolve func() []models.Resolved

	// UI state
	focused  FocusedPanel
	width    int
	height   int
	quitting bool
}

// NewAppModel creates the interactive search over the configured paths
func NewAppModel(cfg *config.Search, fs afero.Fs) *AppModel {
	resolver := scanner.NewResolver(fs)
	resolver.SetMaxDepth(cfg.MaxDepth)
	paths := append([]string(nil), cfg.Paths...)
	resolve := func() []models.Resolved {
		return resolver.Resolve(paths, cfg.Recursive)
	}

	sources := filelist.NewModel()
	sources.SetEntries(resolve())

	initial := messages.PatternChangedMsg{
		Pattern:    cfg.Pattern,
		IgnoreCase: cfg.IgnoreCase,
		Invert:     cfg.Invert,
		Count:      cfg.Count,
	}

	m := &AppModel{
		search:  searchui.NewModel(NewRunner(fs, cfg), initial),
		sources: sources,
		resolve: resolve,
		focused: SearchPanel,
		width:   80,
		height:  24,
	}
	m.search.Focus()
	return m
}

// NewRunner returns a search runner over the paths of cfg. The pattern and
// flags of each request replace those in cfg.
func NewRunner(fs afero.Fs, cfg *config.Search) searchui.Runner {
	return func(seq int, req messages.PatternChangedMsg) messages.SearchCompletedMsg {
		run := *cfg
		run.Pattern = req.Pattern
		run.IgnoreCase = req.IgnoreCase
		run.Invert = req.Invert
		run.Count = req.Count

		result := messages.SearchCompletedMsg{Seq: seq}
		if run.Pattern == "" {
			return result
		}

		var out, errOut bytes.Buffer
		searcher := search.NewSearcher(fs, nil, &out, &errOut)
		result.Err = searcher.Run(&run)
		result.Output = out.String()
		result.Summary = searcher.Summary()
		if diag := strings.TrimSpace(errOut.String()); diag != "" {
			result.Diagnostics = strings.Split(diag, "\n")
		}
		return result
	}
}

// Init implements tea.Model
func (m *AppModel) Init() tea.Cmd {
	return m.search.Init()
}

// Update implements tea.Model
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case messages.SearchCompletedMsg:
		m.search, cmd = m.search.Update(msg)
		return m, cmd

	case messages.SourcesResolvedMsg:
		m.sources, cmd = m.sources.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "tab", "shift+tab":
			m.togglePanel()
			return m, nil

		case "ctrl+r":
			return m, tea.Batch(m.rescanCmd(), m.search.Rerun())
		}
	}

	switch m.focused {
	case SearchPanel:
		m.search, cmd = m.search.Update(msg)
	case SourcesPanel:
		m.sources, cmd = m.sources.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model
func (m *AppModel) View() string {
	if m.quitting {
		return ""
	}

	headerHeight := 2
	statusHeight := 3
	contentHeight := m.height - headerHeight - statusHeight

	leftWidth := m.width / 3
	rightWidth := m.width - leftWidth

	sources := m.getPanelStyle(SourcesPanel, leftWidth, contentHeight).Render(m.sources.View())
	results := m.getPanelStyle(SearchPanel, rightWidth, contentHeight).Render(m.search.View())

	content := lipgloss.JoinHorizontal(lipgloss.Top, sources, results)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), content, m.renderStatus())
}

func (m *AppModel) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		Render("grepninja - interactive search")

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render("Tab: switch panel | Ctrl+R: rescan | Esc/Ctrl+C: quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, help)
}

func (m *AppModel) renderStatus() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(max(m.width-2, 1)).
		Padding(0, 1)

	status := "Ready"
	if err := m.search.Err(); err != nil {
		status = err.Error()
	}

	summary := m.search.Summary()
	parts := []string{
		fmt.Sprintf("Sources: %d searched, %d failed", summary.Searched, summary.Failed),
		fmt.Sprintf("Lines: %d in %d sources", summary.MatchedLines, summary.SourcesWithHit),
		fmt.Sprintf("Status: %s", status),
	}
	return style.Render(strings.Join(parts, " | "))
}

func (m *AppModel) getPanelStyle(panel FocusedPanel, width, height int) lipgloss.Style {
	borderColor := lipgloss.Color("240")
	if panel == m.focused {
		borderColor = lipgloss.Color("205")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(max(width-2, 1)).
		Height(max(height-2, 1)).
		Padding(0, 1)
}

func (m *AppModel) resize() {
	contentHeight := m.height - 5
	leftWidth := m.width / 3
	m.sources.SetSize(max(leftWidth-4, 1), max(contentHeight-2, 1))
	m.search.SetSize(max(m.width-leftWidth-4, 1), max(contentHeight-2, 1))
}

// rescanCmd resolves the paths again so new or removed files show up
func (m *AppModel) rescanCmd() tea.Cmd {
	resolve := m.resolve
	return func() tea.Msg {
		return messages.SourcesResolvedMsg{Entries: resolve()}
	}
}

func (m *AppModel) togglePanel() {
	if m.focused == SearchPanel {
		m.focused = SourcesPanel
		m.search.Blur()
		m.sources.Focus()
		return
	}
	m.focused = SearchPanel
	m.sources.Blur()
	m.search.Focus()
}

// Summary returns the tally of the last successful search
func (m *AppModel) Summary() models.Summary {
	return m.search.Summary()
}

// Focused returns the focused panel
func (m *AppModel) Focused() FocusedPanel {
	return m.focused
}
