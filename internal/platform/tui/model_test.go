package tui

import (
	"math/rand"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/service-drop/internal/config"
	"github.com/vovakirdan/service-drop/internal/core"
	"github.com/vovakirdan/service-drop/internal/game"
	"github.com/vovakirdan/service-drop/internal/session"
)

func newTestModel(t *testing.T) (Model, *session.Session) {
	t.Helper()

	cfg := config.DefaultGameConfig()
	g, err := game.New(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	sess := session.New(g, session.Options{ID: "tui-test"})
	t.Cleanup(sess.Stop)

	return NewModel(sess, nil, OptionsFromConfig(cfg)), sess
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelWaitsForWindowSize(t *testing.T) {
	m, sess := newTestModel(t)

	assert.False(t, sess.Snapshot().Ready)
	assert.Contains(t, m.View(), "Waiting for terminal size")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	snap := sess.Snapshot()
	require.True(t, snap.Ready)
	assert.Equal(t, core.Display{Width: 2000, Height: 1000, Density: 25, IconSize: 300}, snap.Display)
	assert.Contains(t, m.View(), "2000 * 1000 px")
	assert.Contains(t, m.View(), "Score: 0")
}

func TestModelResizeAfterReadyKeepsDisplay(t *testing.T) {
	m, sess := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	_, _ = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 60})

	assert.Equal(t, 2000, sess.Snapshot().Display.Width)
}

func TestModelTooSmallTerminal(t *testing.T) {
	m, sess := newTestModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	assert.False(t, sess.Snapshot().Ready)
	assert.Contains(t, m.View(), "Terminal too small")

	// A bigger window recovers
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.True(t, sess.Snapshot().Ready)
	assert.NotContains(t, m.View(), "Terminal too small")
}

func TestModelArrowKeysDrag(t *testing.T) {
	m, sess := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	x := sess.Snapshot().Icon.X

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, x+50, sess.Snapshot().Icon.X)

	_, _ = update(t, m, keyRunes("a"))
	assert.Equal(t, x, sess.Snapshot().Icon.X)
}

func TestModelMouseDrag(t *testing.T) {
	m, sess := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	x := sess.Snapshot().Icon.X

	// Motion without a press does nothing
	m, _ = update(t, m, tea.MouseMsg{X: 40, Action: tea.MouseActionMotion})
	assert.Equal(t, x, sess.Snapshot().Icon.X)

	// Icon sits at columns 34-45, rows 0-5
	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 36, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, x-100, sess.Snapshot().Icon.X)

	m, _ = update(t, m, tea.MouseMsg{X: 36, Action: tea.MouseActionRelease})
	_, _ = update(t, m, tea.MouseMsg{X: 60, Action: tea.MouseActionMotion})
	assert.Equal(t, x-100, sess.Snapshot().Icon.X)
}

func TestModelOutcomeShowsToast(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	o := game.Outcome{Kind: game.OutcomeMiss, Message: "Missed! Outreach belongs to General Public"}
	m, cmd := update(t, m, eventMsg{event: session.OutcomeEvent{Outcome: o}})

	assert.NotNil(t, cmd, "event pump must keep running")
	assert.Equal(t, o.Message, m.toast)
	assert.Contains(t, m.View(), "Missed!")

	_, cmd = update(t, m, eventMsg{event: session.ResetEvent{Round: 2}})
	assert.NotNil(t, cmd)
}

func TestModelMousePressOffIconDoesNotDrag(t *testing.T) {
	m, sess := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	x := sess.Snapshot().Icon.X

	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.dragging)

	_, _ = update(t, m, tea.MouseMsg{X: 5, Y: 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, x, sess.Snapshot().Icon.X)
}

func TestModelRestartClearsToast(t *testing.T) {
	m, sess := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m.toast = "something"

	m, _ = update(t, m, keyRunes("r"))
	assert.Empty(t, m.toast)
	assert.Equal(t, 0, sess.Snapshot().Score)
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestModelStoppedEventQuits(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, eventMsg{event: session.StoppedEvent{}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.True(t, m.quitting)
}

func TestModelScoreboardNeedsStore(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, m.showScoreboard)
}

func TestGameKeyMap(t *testing.T) {
	k := DefaultGameKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{keyRunes("d"), core.ActionRight},
		{keyRunes("r"), core.ActionRestart},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{keyRunes("z"), core.ActionNone},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, k.MapKey(tc.msg), tc.msg.String())
	}
}
