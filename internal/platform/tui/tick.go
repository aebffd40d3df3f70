// Package tui provides the Bubble Tea presentation surface for service drop.
// It maps terminal cells to game pixels, forwards drags to the session and
// redraws from session snapshots.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/service-drop/internal/session"
)

// FrameRate is how often the play screen redraws.
const FrameRate = 30

// FrameMsg is sent to trigger a redraw from the latest snapshot.
type FrameMsg time.Time

// frameCmd returns a Bubble Tea command that sends frame messages at the specified rate.
func frameCmd(rate int) tea.Cmd {
	interval := time.Second / time.Duration(rate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// eventMsg carries a session event into the Bubble Tea loop.
type eventMsg struct {
	event session.Event
}

// sessionClosedMsg is sent once the subscriber channel is closed.
type sessionClosedMsg struct{}

// waitForEvent blocks on the subscriber until the next event.
func waitForEvent(sub *session.Subscriber) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-sub.Events()
		if !ok {
			return sessionClosedMsg{}
		}
		return eventMsg{event: evt}
	}
}
