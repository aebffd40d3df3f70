package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/service-drop/internal/core"
	"github.com/vovakirdan/service-drop/internal/session"
	"github.com/vovakirdan/service-drop/internal/storage"
)

// DefaultToastDuration matches a long platform toast.
const DefaultToastDuration = 3500 * time.Millisecond

// Options configures the play screen.
type Options struct {
	Title         string
	Author        string
	Density       float64 // Pixels per terminal column
	IconSize      int
	DragStep      int // Pixels per arrow key press
	ToastDuration time.Duration
}

// Model is the Bubble Tea model for the play screen.
type Model struct {
	session *session.Session
	sub     *session.Subscriber
	store   *storage.Store
	opts    Options

	screen *core.Screen
	layout Layout
	keys   GameKeyMap
	help   help.Model
	width  int
	height int

	displayErr error
	toast      string
	toastUntil time.Time

	dragging bool
	dragX    int

	scoreboard     ScoreboardModel
	showScoreboard bool
	quitting       bool
}

// NewModel creates the play screen for a session.
// The store is optional and only used by the scoreboard.
func NewModel(sess *session.Session, store *storage.Store, opts Options) Model {
	if opts.Density <= 0 {
		opts.Density = 25
	}
	if opts.IconSize <= 0 {
		opts.IconSize = core.DefaultIconSize
	}
	if opts.DragStep <= 0 {
		opts.DragStep = 50
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = DefaultToastDuration
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		session: sess,
		sub:     sess.Subscribe(session.DefaultSubscriberBuffer),
		store:   store,
		opts:    opts,
		screen:  core.NewScreen(0, 0),
		keys:    DefaultGameKeyMap(),
		help:    h,
	}
}

// Init starts the redraw loop and the event pump.
func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(FrameRate), waitForEvent(m.sub))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showScoreboard {
		return m.updateScoreboard(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		if m.toast != "" && time.Time(msg).After(m.toastUntil) {
			m.toast = ""
		}
		return m, frameCmd(FrameRate)

	case eventMsg:
		return m.handleEvent(msg.event)

	case sessionClosedMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		m.sub.Close()
		return m, tea.Quit

	case core.ActionLeft, core.ActionRight:
		m.session.Drag(action.DragDirection() * m.opts.DragStep)

	case core.ActionRestart:
		m.session.Restart()
		m.toast = ""

	case core.ActionScoreboard:
		if m.store != nil {
			m.scoreboard = newEmbeddedScoreboard(m.store, m.width, m.height)
			m.showScoreboard = true
		}
	}

	return m, nil
}

// handleMouse turns horizontal pointer motion into drags, one column at a
// time scaled to pixels. A drag starts only when the left button is pressed
// on the icon.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			break
		}
		snap := m.session.Snapshot()
		if snap.Ready && m.layout.CellRect(snap.IconRect()).Contains(msg.X, msg.Y) {
			m.dragging = true
			m.dragX = msg.X
		}
	case tea.MouseActionMotion:
		if m.dragging {
			if dx := msg.X - m.dragX; dx != 0 {
				m.session.Drag(m.layout.PxX(dx))
				m.dragX = msg.X
			}
		}
	case tea.MouseActionRelease:
		m.dragging = false
	}
	return m, nil
}

// handleResize hands the first usable terminal size to the session.
// The game reads its display once; later resizes only change the frame.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	if m.session.Snapshot().Ready {
		return m, nil
	}

	m.layout = NewLayout(msg.Width, msg.Height, m.opts.Density)
	m.screen.Resize(m.layout.Cols, m.layout.Rows)
	m.displayErr = m.session.SetDisplay(m.layout.Display(m.opts.IconSize))
	return m, nil
}

func (m Model) handleEvent(evt session.Event) (tea.Model, tea.Cmd) {
	switch e := evt.(type) {
	case session.OutcomeEvent:
		m.toast = e.Outcome.Message
		m.toastUntil = time.Now().Add(m.opts.ToastDuration)
	case session.StoppedEvent:
		m.quitting = true
		return m, tea.Quit
	}
	return m, waitForEvent(m.sub)
}

func (m Model) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Keep the event pump and redraw loop alive underneath
	switch msg := msg.(type) {
	case FrameMsg:
		return m, frameCmd(FrameRate)
	case eventMsg:
		return m.handleEvent(msg.event)
	case sessionClosedMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}

	updated, cmd := m.scoreboard.Update(msg)
	if sb, ok := updated.(ScoreboardModel); ok {
		m.scoreboard = sb
	}
	if m.scoreboard.IsQuitting() {
		m.quitting = true
		m.sub.Close()
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.showScoreboard = false
		return m, nil
	}
	return m, cmd
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScoreboard {
		return m.scoreboard.View()
	}
	if m.displayErr != nil {
		if errors.Is(m.displayErr, core.ErrDisplayTooSmall) {
			return RenderTooSmall(m.layout, m.opts.IconSize, m.width, m.height)
		}
		return warningStyle.Render(m.displayErr.Error())
	}

	snap := m.session.Snapshot()
	if !snap.Ready {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			helpStyle.Render("Waiting for terminal size..."))
	}

	DrawSnapshot(m.screen, m.layout, snap)

	status := RenderStatus(StatusInfo{
		Title:   m.opts.Title,
		Author:  m.opts.Author,
		Display: snap.Display,
		Status:  snap.Status,
		Toast:   m.toast,
		Help:    m.help.View(m.keys),
	}, m.width)

	return RenderScreen(m.screen) + "\n" + status
}

// Run starts the session and the Bubble Tea program, and stops the session
// when the program exits.
func Run(ctx context.Context, sess *session.Session, store *storage.Store, opts Options) error {
	model := NewModel(sess, store, opts)
	sess.Start(ctx)
	defer sess.Stop()

	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
