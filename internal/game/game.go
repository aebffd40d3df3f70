// Package game implements the service drop state machine.
// A service icon falls one fixed step per tick; it is scored against the first
// role zone it overlaps, or reported as a miss when it reaches the bottom.
// The package is pure: it has no timers, goroutines or I/O. The session
// package drives it on a wall clock.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/service-drop/internal/config"
	"github.com/vovakirdan/service-drop/internal/core"
)

// State is the phase of the current round.
type State int

const (
	StateFalling State = iota
	StateResultPending
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateFalling:
		return "falling"
	case StateResultPending:
		return "result pending"
	default:
		return "unknown"
	}
}

// Stats are cumulative counters since the last Restart.
type Stats struct {
	Ticks   int
	Rounds  int
	Hits    int
	Misses  int
	Correct int
	Wrong   int
}

// Game implements the service drop game logic.
type Game struct {
	display  core.Display
	iconSize int
	dropStep int
	roles    [ZoneCount]Role
	zones    ZoneTable
	pool     *ServicePool
	scorer   Scorer
	ready    bool

	icon    FallingIcon
	state   State
	score   int
	message string
	last    *Outcome
	stats   Stats
}

// New creates a game from a validated config.
// rng selects the next falling service; nil means a time-seeded source.
// The game is not ready until SetDisplay supplies a known screen size.
func New(cfg config.GameConfig, rng *rand.Rand) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	scorer, err := NewScorer(cfg.Scoring)
	if err != nil {
		return nil, err
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g := &Game{
		iconSize: cfg.Display.IconSize,
		dropStep: cfg.Timing.DropStep,
		scorer:   scorer,
	}

	for i, r := range cfg.Roles {
		g.roles[i] = Role{ID: r.ID, Label: r.Label}
	}

	services := make([]Service, 0, len(cfg.Services))
	for _, s := range cfg.Services {
		services = append(services, Service{ID: s.ID, Label: s.Label, RoleID: s.Role})
	}
	g.pool = NewServicePool(services, rng)

	return g, nil
}

// SetDisplay supplies the host screen. A display that is not ready yet is
// ignored so the caller can retry later. The screen size is read once: after
// the game is ready further calls have no effect.
func (g *Game) SetDisplay(d core.Display) error {
	if g.ready || !d.Ready() {
		return nil
	}
	if d.IconSize == 0 {
		d.IconSize = g.iconSize
	}
	if err := d.Validate(); err != nil {
		return err
	}

	g.display = d
	g.iconSize = d.IconSize
	g.zones = NewZoneTable(g.roles, d.Width, d.Height, d.IconSize)
	g.ready = true
	g.stats.Rounds = 0
	g.Reset()
	return nil
}

// Ready reports whether zones are computed and the loop may run.
func (g *Game) Ready() bool {
	return g.ready
}

// Step advances the simulation by one fixed tick.
// It returns the outcome if one fired during this tick.
func (g *Game) Step() (Outcome, bool) {
	if !g.ready || g.state == StateResultPending {
		return Outcome{}, false
	}
	g.stats.Ticks++

	nextY := g.icon.Y + g.dropStep
	rect := g.icon.RectAt(nextY, g.iconSize)

	if zone, ok := g.zones.Match(rect); ok {
		return g.resolve(OutcomeHit, zone)
	}

	if nextY >= g.missLine() {
		return g.resolve(OutcomeMiss, Zone{})
	}

	g.icon.Y = nextY
	return Outcome{}, false
}

// missLine is the vertical offset at which an uncaught icon has reached the bottom.
func (g *Game) missLine() int {
	return g.display.Height - g.iconSize
}

// resolve applies a hit or miss and enters ResultPending.
// A second call before Reset is ignored.
func (g *Game) resolve(kind OutcomeKind, zone Zone) (Outcome, bool) {
	if g.state == StateResultPending {
		return Outcome{}, false
	}
	g.state = StateResultPending

	o := Outcome{
		Kind:    kind,
		Round:   g.stats.Rounds,
		Service: g.icon.Service,
	}
	for _, r := range g.roles {
		if r.ID == o.Service.RoleID {
			o.CorrectRole = r
			break
		}
	}

	switch kind {
	case OutcomeHit:
		o.Zone = zone
		o.Delta, o.Correct = g.scorer.Score(o.Service, zone)
		g.stats.Hits++
		if o.Correct {
			g.stats.Correct++
		} else {
			g.stats.Wrong++
		}
	case OutcomeMiss:
		g.stats.Misses++
	}

	g.score += o.Delta
	o.Score = g.score
	o.Message = formatMessage(o)

	g.message = o.Message
	g.last = &o
	return o, true
}

// ApplyDrag moves the icon horizontally by dx pixels, clamped to the screen.
// Ignored while a result is pending. Dragging never checks collisions.
func (g *Game) ApplyDrag(dx int) {
	if !g.ready || g.state == StateResultPending {
		return
	}
	g.icon.X = core.Clamp(g.icon.X+dx, 0, g.display.Width-g.iconSize)
}

// Reset replaces the falling icon with a new random service at top-center,
// clears the outcome message and resumes falling. The score is kept.
func (g *Game) Reset() {
	if !g.ready {
		return
	}
	g.icon = FallingIcon{
		Service: g.pool.Next(),
		X:       (g.display.Width - g.iconSize) / 2,
		Y:       0,
	}
	g.state = StateFalling
	g.message = ""
	g.stats.Rounds++
}

// Restart starts over with a zero score and fresh counters.
func (g *Game) Restart() {
	g.score = 0
	g.last = nil
	g.stats = Stats{}
	g.Reset()
}

// Score returns the cumulative score.
func (g *Game) Score() int {
	return g.score
}

// Icon returns the falling icon.
func (g *Game) Icon() FallingIcon {
	return g.icon
}

// Zones returns the zone table. Empty until the game is ready.
func (g *Game) Zones() ZoneTable {
	return g.zones
}

// Display returns the screen the game was sized for.
func (g *Game) Display() core.Display {
	return g.display
}

// Stats returns the cumulative counters.
func (g *Game) Stats() Stats {
	return g.stats
}

// LastOutcome returns the most recent outcome, if any.
func (g *Game) LastOutcome() (Outcome, bool) {
	if g.last == nil {
		return Outcome{}, false
	}
	return *g.last, true
}

// StatusLine returns the persistent score text.
func (g *Game) StatusLine() string {
	return fmt.Sprintf("Score: %d", g.score)
}
