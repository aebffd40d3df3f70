package game

import "github.com/vovakirdan/service-drop/internal/core"

// Snapshot is a read-only copy of everything the presentation surface draws.
type Snapshot struct {
	Ready    bool
	State    State
	Pending  bool
	Icon     FallingIcon
	IconSize int
	Score    int
	Message  string
	Status   string   // Persistent score text for the status panel
	Last     *Outcome // Outcome being shown; nil while falling
	Display  core.Display
	Zones    ZoneTable
	Stats    Stats
}

// Snapshot returns the current game state for rendering and determinism checks.
func (g *Game) Snapshot() Snapshot {
	var last *Outcome
	if o, ok := g.LastOutcome(); ok {
		last = &o
	}
	return Snapshot{
		Ready:    g.ready,
		State:    g.state,
		Pending:  g.state == StateResultPending,
		Icon:     g.icon,
		IconSize: g.iconSize,
		Score:    g.score,
		Message:  g.message,
		Status:   g.StatusLine(),
		Last:     last,
		Display:  g.display,
		Zones:    g.zones,
		Stats:    g.stats,
	}
}

// IconRect returns the falling icon's rectangle.
func (s Snapshot) IconRect() core.Rect {
	return s.Icon.Rect(s.IconSize)
}

// CorrectZone returns the zone the pending outcome's service belongs to.
// It reports false while falling.
func (s Snapshot) CorrectZone() (Zone, bool) {
	if !s.Pending || s.Last == nil {
		return Zone{}, false
	}
	return s.Zones.ByRole(s.Last.Service.RoleID)
}
