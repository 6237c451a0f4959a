package search

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cheerioskun/grepninja/internal/messages"
	"github.com/cheerioskun/grepninja/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRunner answers every request with the pattern echoed as output
type recordingRunner struct {
	requests []messages.PatternChangedMsg
}

func (r *recordingRunner) run(seq int, req messages.PatternChangedMsg) messages.SearchCompletedMsg {
	r.requests = append(r.requests, req)
	return messages.SearchCompletedMsg{
		Seq:     seq,
		Output:  "match for " + req.Pattern + "\n",
		Summary: models.Summary{Searched: 1, MatchedLines: 1},
	}
}

func execCmd(t *testing.T, m *Model, cmd tea.Cmd) *Model {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	completed, ok := msg.(messages.SearchCompletedMsg)
	require.True(t, ok, "expected a SearchCompletedMsg, got %T", msg)
	m, _ = m.Update(completed)
	return m
}

func TestInitRunsFirstSearch(t *testing.T) {
	runner := &recordingRunner{}
	m := NewModel(runner.run, messages.PatternChangedMsg{Pattern: "err", IgnoreCase: true})

	m = execCmd(t, m, m.Init())
	assert.Equal(t, "match for err\n", m.Output())
	assert.NoError(t, m.Err())
	require.Len(t, runner.requests, 1)
	assert.True(t, runner.requests[0].IgnoreCase)
}

func TestToggleFlagsReruns(t *testing.T) {
	runner := &recordingRunner{}
	m := NewModel(runner.run, messages.PatternChangedMsg{Pattern: "err"})
	m.Focus()

	var cmd tea.Cmd
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = execCmd(t, m, cmd)
	assert.True(t, m.Request().IgnoreCase)

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	m = execCmd(t, m, cmd)
	assert.True(t, m.Request().Invert)

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	m = execCmd(t, m, cmd)
	assert.True(t, m.Request().Count)

	require.Len(t, runner.requests, 3)
	assert.Equal(t, messages.PatternChangedMsg{Pattern: "err", IgnoreCase: true, Invert: true, Count: true}, runner.requests[2])
}

func TestKeysIgnoredWhenBlurred(t *testing.T) {
	runner := &recordingRunner{}
	m := NewModel(runner.run, messages.PatternChangedMsg{Pattern: "err"})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Nil(t, cmd)
	assert.False(t, m.Request().IgnoreCase)
}

func TestTypingRerunsSearch(t *testing.T) {
	runner := &recordingRunner{}
	m := NewModel(runner.run, messages.PatternChangedMsg{Pattern: "er"})
	m.Focus()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	assert.Equal(t, "err", m.Request().Pattern)

	// The batch carries the search alongside the input's own command
	m, _ = m.Update(runner.run(m.seq, m.Request()))
	assert.Equal(t, "match for err\n", m.Output())
}

func TestStaleResultsAreDropped(t *testing.T) {
	runner := &recordingRunner{}
	m := NewModel(runner.run, messages.PatternChangedMsg{Pattern: "a"})

	stale := m.Init()
	m.Focus()
	_, fresh := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	require.NotNil(t, fresh)

	m, _ = m.Update(stale())
	assert.Empty(t, m.Output(), "result of an older run must not be shown")

	m, _ = m.Update(fresh())
	assert.Equal(t, "match for a\n", m.Output())
}

func TestInvalidPatternShownInline(t *testing.T) {
	runner := func(seq int, req messages.PatternChangedMsg) messages.SearchCompletedMsg {
		return messages.SearchCompletedMsg{Seq: seq, Err: errors.New(`Invalid pattern "("`)}
	}
	m := NewModel(runner, messages.PatternChangedMsg{Pattern: "("})
	m.SetSize(60, 20)

	m = execCmd(t, m, m.Init())
	assert.EqualError(t, m.Err(), `Invalid pattern "("`)
	assert.Contains(t, m.View(), `Invalid pattern "("`)
}
