package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/service-drop/internal/config"
	"github.com/vovakirdan/service-drop/internal/core"
)

// scenarioDisplay is 1000x2000 px with 300 px icons.
var scenarioDisplay = core.Display{Width: 1000, Height: 2000, Density: 1, IconSize: 300}

func newTestGame(t *testing.T, mutate func(*config.GameConfig)) *Game {
	t.Helper()

	cfg := config.DefaultGameConfig()
	cfg.Timing.DropStep = 20
	if mutate != nil {
		mutate(&cfg)
	}

	g, err := New(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.NoError(t, g.SetDisplay(scenarioDisplay))
	return g
}

// setService pins the falling service so scoring is predictable.
func setService(g *Game, id string) {
	for _, s := range g.pool.services {
		if s.ID == id {
			g.icon.Service = s
			return
		}
	}
	panic("unknown service " + id)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Scoring.Mode = "double"

	_, err := New(cfg, nil)
	assert.ErrorIs(t, err, config.ErrUnknownScoring)
}

func TestDisplayNotReadyDefers(t *testing.T) {
	g, err := New(config.DefaultGameConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	require.NoError(t, g.SetDisplay(core.Display{}))
	assert.False(t, g.Ready())

	// Nothing moves before the screen is known
	_, fired := g.Step()
	assert.False(t, fired)
	g.ApplyDrag(100)
	assert.Equal(t, FallingIcon{}, g.Icon())
	assert.Equal(t, 0, g.Stats().Ticks)

	require.NoError(t, g.SetDisplay(scenarioDisplay))
	assert.True(t, g.Ready())
	assert.Equal(t, 350, g.Icon().X)
	assert.Equal(t, 0, g.Icon().Y)
	assert.Equal(t, 1, g.Stats().Rounds)
}

func TestSetDisplayTooSmall(t *testing.T) {
	g, err := New(config.DefaultGameConfig(), nil)
	require.NoError(t, err)

	err = g.SetDisplay(core.Display{Width: 500, Height: 2000, Density: 1})
	assert.ErrorIs(t, err, core.ErrDisplayTooSmall)
	assert.False(t, g.Ready())
}

func TestSetDisplayReadOnce(t *testing.T) {
	g := newTestGame(t, nil)
	zones := g.Zones()

	require.NoError(t, g.SetDisplay(core.Display{Width: 4000, Height: 4000, Density: 2}))
	assert.Equal(t, zones, g.Zones())
	assert.Equal(t, scenarioDisplay, g.Display())
}

func TestSetDisplayUsesConfiguredIconSize(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Display.IconSize = 200

	g, err := New(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, g.SetDisplay(core.Display{Width: 1000, Height: 2000, Density: 1}))

	assert.Equal(t, 200, g.Snapshot().IconSize)
	assert.Equal(t, 400, g.Icon().X)
}

func TestStepAdvancesByFixedIncrement(t *testing.T) {
	g := newTestGame(t, nil)

	for i := 1; i <= 10; i++ {
		_, fired := g.Step()
		require.False(t, fired)
		assert.Equal(t, i*20, g.Icon().Y)
	}
	assert.Equal(t, 350, g.Icon().X)
	assert.Equal(t, 10, g.Stats().Ticks)
}

func TestMissScenario(t *testing.T) {
	g := newTestGame(t, nil)

	missTick := 0
	for tick := 1; tick <= 100; tick++ {
		o, fired := g.Step()
		if fired {
			missTick = tick
			assert.Equal(t, OutcomeMiss, o.Kind)
			assert.Equal(t, 0, o.Delta)
			break
		}
		assert.LessOrEqual(t, g.Icon().Y, 1700)
	}

	assert.Equal(t, 85, missTick)
	assert.Equal(t, 0, g.Score())
	assert.True(t, g.Snapshot().Pending)
	assert.Equal(t, 1, g.Stats().Misses)
}

func TestMissThresholdInclusive(t *testing.T) {
	g := newTestGame(t, nil)

	// Candidate lands one step short of the line: keep falling
	g.icon.Y = 1660
	_, fired := g.Step()
	require.False(t, fired)
	assert.Equal(t, 1680, g.Icon().Y)

	// Candidate lands exactly on screenHeight - iconSize: miss
	o, fired := g.Step()
	require.True(t, fired)
	assert.Equal(t, OutcomeMiss, o.Kind)
	assert.Equal(t, 1680, g.Icon().Y, "candidate position is not committed on an outcome")
}

func TestCollisionScenarioZoneA(t *testing.T) {
	g := newTestGame(t, nil)
	g.icon.X = 0
	g.icon.Y = 700

	o, fired := g.Step()
	require.True(t, fired)
	assert.Equal(t, OutcomeHit, o.Kind)
	assert.Equal(t, ZoneUpperLeft, o.Zone.ID)
	assert.Equal(t, core.NewRectEdges(0, 700, 300, 1000), o.Zone.Rect)
}

func TestFallIntoZoneFromTop(t *testing.T) {
	g := newTestGame(t, nil)
	g.ApplyDrag(-1000)
	require.Equal(t, 0, g.Icon().X)

	var o Outcome
	fired := false
	for !fired {
		o, fired = g.Step()
	}

	// First candidate whose bottom passes y=700 is 420
	assert.Equal(t, ZoneUpperLeft, o.Zone.ID)
	assert.Equal(t, 400, g.Icon().Y)
	assert.Equal(t, 21, g.Stats().Ticks)
}

func TestDragClamping(t *testing.T) {
	g := newTestGame(t, nil)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		g.ApplyDrag(rng.Intn(1601) - 800)
		x := g.Icon().X
		require.GreaterOrEqual(t, x, 0)
		require.LessOrEqual(t, x, 700)
	}

	g.ApplyDrag(5000)
	assert.Equal(t, 700, g.Icon().X)
	g.ApplyDrag(-5000)
	assert.Equal(t, 0, g.Icon().X)
}

func TestDragLeavesVerticalAndNeverCollides(t *testing.T) {
	g := newTestGame(t, nil)
	g.icon.Y = 800 // level with zone A

	g.ApplyDrag(-1000)

	assert.Equal(t, 800, g.Icon().Y)
	assert.False(t, g.Snapshot().Pending, "dragging into a zone must not resolve the round")
}

func TestOutcomeIdempotentWhilePending(t *testing.T) {
	g := newTestGame(t, nil)
	setService(g, "early_intervention")
	g.icon.X = 0
	g.icon.Y = 700

	o, fired := g.Step()
	require.True(t, fired)
	score, msg, icon := g.Score(), g.Snapshot().Message, g.Icon()
	assert.Equal(t, o.Message, msg)

	for i := 0; i < 50; i++ {
		_, fired := g.Step()
		require.False(t, fired)
	}
	g.ApplyDrag(300)

	assert.Equal(t, score, g.Score())
	assert.Equal(t, msg, g.Snapshot().Message)
	assert.Equal(t, icon, g.Icon())
	assert.Equal(t, 1, g.Stats().Ticks)

	// Direct re-entry is guarded too
	_, fired = g.resolve(OutcomeMiss, Zone{})
	assert.False(t, fired)
	assert.Equal(t, score, g.Score())
}

func TestResetPlacesIconTopCenter(t *testing.T) {
	g := newTestGame(t, nil)
	g.ApplyDrag(-200)
	for {
		if _, fired := g.Step(); fired {
			break
		}
	}
	require.NotEmpty(t, g.Snapshot().Message)

	g.Reset()

	assert.Equal(t, StateFalling, g.Snapshot().State)
	assert.Equal(t, (1000-300)/2, g.Icon().X)
	assert.Equal(t, 0, g.Icon().Y)
	assert.Empty(t, g.Snapshot().Message)
	assert.Equal(t, 2, g.Stats().Rounds)
}

func TestMatchedScoring(t *testing.T) {
	g := newTestGame(t, nil)

	// Correct: early intervention into the infant zone
	setService(g, "early_intervention")
	g.icon.X, g.icon.Y = 0, 700
	o, _ := g.Step()
	assert.True(t, o.Correct)
	assert.Equal(t, 1, o.Delta)
	assert.Equal(t, 1, g.Score())
	assert.Equal(t, "Early Intervention belongs to Infant (+1)", o.Message)

	// Wrong: vocational training into the child zone
	g.Reset()
	setService(g, "vocational")
	g.icon.X, g.icon.Y = 700, 700
	o, _ = g.Step()
	assert.False(t, o.Correct)
	assert.Equal(t, -1, o.Delta)
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, "Vocational Training belongs to Adult, not Child (-1)", o.Message)

	// Score may go negative
	g.Reset()
	setService(g, "outreach")
	g.icon.X, g.icon.Y = 0, 1500
	o, _ = g.Step()
	assert.Equal(t, ZoneLowerLeft, o.Zone.ID)
	assert.Equal(t, -1, g.Score())

	stats := g.Stats()
	assert.Equal(t, 3, stats.Hits)
	assert.Equal(t, 1, stats.Correct)
	assert.Equal(t, 2, stats.Wrong)
}

func TestFlatScoring(t *testing.T) {
	g := newTestGame(t, func(c *config.GameConfig) {
		c.Scoring.Mode = config.ScoringFlat
		c.Scoring.FlatBonus = 10
	})

	setService(g, "vocational")
	g.icon.X, g.icon.Y = 700, 700
	o, _ := g.Step()

	assert.Equal(t, 10, o.Delta)
	assert.False(t, o.Correct)
	assert.Equal(t, 10, g.Score())
}

func TestMissMessage(t *testing.T) {
	g := newTestGame(t, nil)
	setService(g, "after_school")
	g.icon.Y = 1690

	o, fired := g.Step()
	require.True(t, fired)
	assert.Equal(t, "Missed! After-school Care belongs to Child", o.Message)
	assert.Equal(t, Role{ID: "child", Label: "Child"}, o.CorrectRole)
	assert.Equal(t, Zone{}, o.Zone)
}

func TestRestartClearsScoreAndStats(t *testing.T) {
	g := newTestGame(t, nil)
	setService(g, "early_intervention")
	g.icon.X, g.icon.Y = 0, 700
	g.Step()
	require.Equal(t, 1, g.Score())

	g.Restart()

	assert.Equal(t, 0, g.Score())
	assert.Equal(t, Stats{Rounds: 1}, g.Stats())
	assert.False(t, g.Snapshot().Pending)
	_, ok := g.LastOutcome()
	assert.False(t, ok)
}

func TestServiceSelectionDeterministic(t *testing.T) {
	run := func() []string {
		g, err := New(config.DefaultGameConfig(), rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		require.NoError(t, g.SetDisplay(scenarioDisplay))

		ids := []string{g.Icon().Service.ID}
		for i := 0; i < 20; i++ {
			g.Reset()
			ids = append(ids, g.Icon().Service.ID)
		}
		return ids
	}

	assert.Equal(t, run(), run())
}

func TestSnapshot(t *testing.T) {
	g := newTestGame(t, nil)
	g.Step()

	snap := g.Snapshot()
	assert.True(t, snap.Ready)
	assert.Equal(t, StateFalling, snap.State)
	assert.Equal(t, core.NewRect(350, 20, 300, 300), snap.IconRect())
	assert.Equal(t, g.Zones(), snap.Zones)
	assert.Equal(t, "Score: 0", snap.Status)
	assert.Nil(t, snap.Last)

	_, ok := snap.CorrectZone()
	assert.False(t, ok)
}

func TestSnapshotPendingCarriesOutcome(t *testing.T) {
	g := newTestGame(t, nil)

	// Vocational training lands in the child zone; the adult zone is correct
	setService(g, "vocational")
	g.icon.X, g.icon.Y = 700, 700
	o, fired := g.Step()
	require.True(t, fired)

	snap := g.Snapshot()
	require.NotNil(t, snap.Last)
	assert.Equal(t, o, *snap.Last)
	assert.Equal(t, "Score: -1", snap.Status)

	zone, ok := snap.CorrectZone()
	require.True(t, ok)
	assert.Equal(t, ZoneLowerLeft, zone.ID)
	assert.Equal(t, "adult", zone.Role.ID)

	g.Reset()
	snap = g.Snapshot()
	assert.Nil(t, snap.Last)
	_, ok = snap.CorrectZone()
	assert.False(t, ok)
}
