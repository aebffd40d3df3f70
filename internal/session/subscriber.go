package session

// Subscriber receives session events on a buffered channel.
// The events channel is closed after StoppedEvent or when Close is called.
type Subscriber struct {
	events  chan Event
	closed  bool // guarded by the owning session's subsMu
	session *Session
}

// Events returns the channel to receive events from.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// Close unsubscribes. Safe to call multiple times and after the session stopped.
func (s *Subscriber) Close() {
	s.session.unsubscribe(s)
}

// send delivers an event without blocking.
// If the buffer is full the oldest event is dropped. Caller holds subsMu.
func (s *Subscriber) send(evt Event) {
	if s.closed {
		return
	}

	select {
	case s.events <- evt:
		return
	default:
	}

	// Buffer full, drop oldest and retry
	select {
	case <-s.events:
	default:
	}
	select {
	case s.events <- evt:
	default:
	}
}

// close closes the events channel once. Caller holds subsMu.
func (s *Subscriber) close() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.events)
}
