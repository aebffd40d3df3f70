// Package session drives a game.Game on a wall-clock schedule.
//
// A Session owns one game, advances it on a fixed tick interval and schedules
// the deferred reset that follows every outcome. All game mutation happens
// under a single mutex so ticks, drags and the reset never interleave.
package session

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/service-drop/internal/core"
	"github.com/vovakirdan/service-drop/internal/game"
)

// DefaultSubscriberBuffer is used when Subscribe is given a non-positive size.
const DefaultSubscriberBuffer = 16

// Options configures a Session.
type Options struct {
	ID           string
	Player       string
	TickInterval time.Duration
	ResultDelay  time.Duration
	Logger       *log.Logger
	Recorder     Recorder // Optional
}

// Session runs a single game loop.
type Session struct {
	id       string
	player   string
	tick     time.Duration
	delay    time.Duration
	logger   *log.Logger
	recorder Recorder

	mu         sync.Mutex
	game       *game.Game
	resetTimer *time.Timer
	resetGen   uint64
	stopped    bool
	startedAt  time.Time

	ready     chan struct{}
	readyOnce sync.Once

	subsMu sync.Mutex
	subs   map[*Subscriber]struct{}

	startOnce    sync.Once
	done         chan struct{}
	doneOnce     sync.Once
	finalizeOnce sync.Once
	wg           sync.WaitGroup
}

// New creates a session around g. The loop does not run until Start.
func New(g *game.Game, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = 100 * time.Millisecond
	}
	if opts.ResultDelay < 0 {
		opts.ResultDelay = 0
	}

	s := &Session{
		id:       opts.ID,
		player:   opts.Player,
		tick:     opts.TickInterval,
		delay:    opts.ResultDelay,
		logger:   logger.With("session", opts.ID),
		recorder: opts.Recorder,
		game:     g,
		ready:    make(chan struct{}),
		subs:     make(map[*Subscriber]struct{}),
		done:     make(chan struct{}),
	}
	if g.Ready() {
		s.markReady()
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// SetDisplay hands the screen dimensions to the game.
// The first ready display starts the tick loop if Start was already called.
func (s *Session) SetDisplay(d core.Display) error {
	s.mu.Lock()
	err := s.game.SetDisplay(d)
	ready := s.game.Ready()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if ready {
		s.markReady()
	}
	return nil
}

func (s *Session) markReady() {
	s.readyOnce.Do(func() {
		close(s.ready)
	})
}

// Start launches the tick loop in a goroutine and returns immediately.
// The loop waits for a ready display, then runs until ctx is cancelled or Stop is called.
func (s *Session) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		s.mu.Lock()
		s.startedAt = time.Now()
		s.mu.Unlock()

		s.wg.Add(1)
		go s.run(ctx)
	})
}

func (s *Session) run(ctx context.Context) {
	defer s.wg.Done()
	defer s.finalize()

	select {
	case <-s.ready:
	case <-ctx.Done():
		s.signalDone()
		return
	case <-s.done:
		return
	}

	s.logger.Debug("tick loop started", "interval", s.tick, "result_delay", s.delay)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.signalDone()
			return
		case <-s.done:
			return
		case <-ticker.C:
			s.step()
		}
	}
}

// step advances the game by one tick and reacts to an outcome.
func (s *Session) step() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	o, fired := s.game.Step()
	if !fired {
		s.mu.Unlock()
		return
	}
	s.scheduleReset()
	// Published under mu so a zero-delay reset cannot overtake the outcome
	s.publish(OutcomeEvent{Outcome: o, Snapshot: s.game.Snapshot()})
	s.mu.Unlock()

	s.logger.Debug("outcome", "round", o.Round, "kind", o.Kind, "service", o.Service.ID,
		"zone", o.Zone.Role.ID, "delta", o.Delta, "score", o.Score)

	if s.recorder != nil {
		if err := s.recorder.SaveRound(roundData(s.id, o)); err != nil {
			s.logger.Warn("failed to save round", "err", err)
		}
	}
}

// scheduleReset arms the one-shot reset timer. Caller holds mu.
func (s *Session) scheduleReset() {
	s.cancelResetLocked()
	gen := s.resetGen
	s.resetTimer = time.AfterFunc(s.delay, func() {
		s.fireReset(gen)
	})
}

// cancelResetLocked disarms a pending reset. Caller holds mu.
func (s *Session) cancelResetLocked() {
	s.resetGen++
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
}

func (s *Session) fireReset(gen uint64) {
	s.mu.Lock()
	// A stale timer may still fire after Stop, Restart or a newer outcome
	if s.stopped || gen != s.resetGen {
		s.mu.Unlock()
		return
	}
	s.resetTimer = nil
	s.game.Reset()
	snap := s.game.Snapshot()
	s.publish(ResetEvent{Round: snap.Stats.Rounds, Snapshot: snap})
	s.mu.Unlock()

	s.logger.Debug("round reset", "round", snap.Stats.Rounds, "service", snap.Icon.Service.ID)
}

// Drag moves the icon horizontally by dx pixels.
// Ignored while a result is pending.
func (s *Session) Drag(dx int) {
	if dx == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.game.ApplyDrag(dx)
}

// Restart clears score and statistics and starts a fresh round at once,
// discarding any pending reset.
func (s *Session) Restart() {
	s.mu.Lock()
	if s.stopped || !s.game.Ready() {
		s.mu.Unlock()
		return
	}
	s.cancelResetLocked()
	s.game.Restart()
	snap := s.game.Snapshot()
	s.publish(ResetEvent{Round: snap.Stats.Rounds, Snapshot: snap})
	s.mu.Unlock()

	s.logger.Info("session restarted")
}

// Snapshot returns the current game state.
func (s *Session) Snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// Summary returns the session totals so far.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

func (s *Session) summaryLocked() Summary {
	var dur time.Duration
	if !s.startedAt.IsZero() {
		dur = time.Since(s.startedAt)
	}
	return Summary{
		SessionID: s.id,
		Player:    s.player,
		Score:     s.game.Score(),
		Stats:     s.game.Stats(),
		StartedAt: s.startedAt,
		Duration:  dur,
	}
}

// Subscribe registers a new event subscriber.
// A subscriber added after the session stopped gets a closed channel.
func (s *Session) Subscribe(buffer int) *Subscriber {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	sub := &Subscriber{
		events:  make(chan Event, buffer),
		session: s,
	}

	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	select {
	case <-s.done:
		sub.close()
		return sub
	default:
	}
	s.subs[sub] = struct{}{}
	return sub
}

func (s *Session) unsubscribe(sub *Subscriber) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	delete(s.subs, sub)
	sub.close()
}

// publish fans evt out to all subscribers. Lock order is mu before subsMu.
func (s *Session) publish(evt Event) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for sub := range s.subs {
		sub.send(evt)
	}
}

// Done returns a channel that is closed once the session begins stopping.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) signalDone() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// Stop cancels the tick loop and any pending reset, records the session
// and notifies subscribers. Safe to call multiple times.
func (s *Session) Stop() {
	s.signalDone()
	s.wg.Wait()
	s.finalize()
}

func (s *Session) finalize() {
	s.finalizeOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		s.cancelResetLocked()
		summary := s.summaryLocked()
		ready := s.game.Ready()
		s.mu.Unlock()

		s.logger.Info("session stopped", "score", summary.Score, "rounds", summary.Stats.Rounds,
			"duration", summary.Duration.Round(time.Second))

		if s.recorder != nil && ready && summary.Stats.Ticks > 0 {
			if err := s.recorder.SaveSession(sessionData(summary)); err != nil {
				s.logger.Warn("failed to save session", "err", err)
			}
		}

		s.subsMu.Lock()
		for sub := range s.subs {
			sub.send(StoppedEvent{Summary: summary})
			sub.close()
			delete(s.subs, sub)
		}
		s.subsMu.Unlock()
	})
}
