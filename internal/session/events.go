package session

import (
	"time"

	"github.com/vovakirdan/service-drop/internal/game"
)

// Event is sent from a session to its subscribers.
type Event interface {
	sessionEvent()
}

// OutcomeEvent is sent when an icon is caught or missed.
// The presentation surface shows Outcome.Message as a transient notification.
type OutcomeEvent struct {
	Outcome  game.Outcome
	Snapshot game.Snapshot
}

func (OutcomeEvent) sessionEvent() {}

// ResetEvent is sent when a new icon starts falling.
type ResetEvent struct {
	Round    int
	Snapshot game.Snapshot
}

func (ResetEvent) sessionEvent() {}

// StoppedEvent is the last event a subscriber receives.
type StoppedEvent struct {
	Summary Summary
}

func (StoppedEvent) sessionEvent() {}

// Summary describes a finished session.
type Summary struct {
	SessionID string
	Player    string
	Score     int
	Stats     game.Stats
	StartedAt time.Time
	Duration  time.Duration
}

// RoundData is one outcome in storage-neutral form.
type RoundData struct {
	SessionID string
	Round     int
	Kind      string // "hit" or "miss"
	ServiceID string
	ZoneRole  string // Empty on a miss
	Correct   bool
	Delta     int
	Score     int
}

// SessionData is a finished session in storage-neutral form.
type SessionData struct {
	SessionID    string
	Player       string
	Score        int
	Rounds       int
	Hits         int
	Misses       int
	Correct      int
	Wrong        int
	DurationSecs int
}

// Recorder persists outcomes and session results.
// Implemented by storage.Store; the session never depends on storage directly.
type Recorder interface {
	SaveRound(data RoundData) error
	SaveSession(data SessionData) error
}

func roundData(sessionID string, o game.Outcome) RoundData {
	return RoundData{
		SessionID: sessionID,
		Round:     o.Round,
		Kind:      o.Kind.String(),
		ServiceID: o.Service.ID,
		ZoneRole:  o.Zone.Role.ID,
		Correct:   o.Correct,
		Delta:     o.Delta,
		Score:     o.Score,
	}
}

func sessionData(s Summary) SessionData {
	return SessionData{
		SessionID:    s.SessionID,
		Player:       s.Player,
		Score:        s.Score,
		Rounds:       s.Stats.Rounds,
		Hits:         s.Stats.Hits,
		Misses:       s.Stats.Misses,
		Correct:      s.Stats.Correct,
		Wrong:        s.Stats.Wrong,
		DurationSecs: int(s.Duration / time.Second),
	}
}
