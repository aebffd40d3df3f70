package game

import (
	"fmt"

	"github.com/vovakirdan/service-drop/internal/config"
)

// OutcomeKind distinguishes a caught icon from one that reached the bottom.
type OutcomeKind int

const (
	OutcomeHit OutcomeKind = iota
	OutcomeMiss
)

// String returns "hit" or "miss".
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeHit:
		return "hit"
	case OutcomeMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// Outcome is the result of one falling icon.
type Outcome struct {
	Kind        OutcomeKind
	Round       int
	Service     Service
	Zone        Zone // Zero unless Kind == OutcomeHit
	CorrectRole Role // The role the service actually belongs to
	Correct     bool // Hit in the zone of CorrectRole
	Delta       int  // Score change applied
	Score       int  // Score after the change
	Message     string
}

// Scorer decides the score change for a caught icon.
type Scorer interface {
	Score(service Service, zone Zone) (delta int, correct bool)
}

// MatchedScorer rewards a catch in the service's own role zone and
// penalizes a catch anywhere else.
type MatchedScorer struct {
	Reward  int
	Penalty int
}

// Score implements Scorer.
func (s MatchedScorer) Score(service Service, zone Zone) (int, bool) {
	if zone.Role.ID == service.RoleID {
		return s.Reward, true
	}
	return -s.Penalty, false
}

// FlatScorer gives the same bonus for any catch.
type FlatScorer struct {
	Bonus int
}

// Score implements Scorer. Correct still reports whether the role matched.
func (s FlatScorer) Score(service Service, zone Zone) (int, bool) {
	return s.Bonus, zone.Role.ID == service.RoleID
}

// NewScorer builds the scorer for a scoring config.
func NewScorer(cfg config.ScoringConfig) (Scorer, error) {
	switch cfg.Mode {
	case config.ScoringMatched:
		return MatchedScorer{Reward: cfg.Reward, Penalty: cfg.Penalty}, nil
	case config.ScoringFlat:
		return FlatScorer{Bonus: cfg.FlatBonus}, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownScoring, cfg.Mode)
	}
}

// formatMessage builds the human-readable outcome text.
func formatMessage(o Outcome) string {
	base := fmt.Sprintf("%s belongs to %s", o.Service.Label, o.CorrectRole.Label)

	if o.Kind == OutcomeMiss {
		return "Missed! " + base
	}
	if !o.Correct && o.Zone.Role.ID != "" {
		base = fmt.Sprintf("%s, not %s", base, o.Zone.Role.Label)
	}
	return fmt.Sprintf("%s (%+d)", base, o.Delta)
}
