package narrativesdk

import (
	"sync"
)

// ──────────────────────────────────────────────
// History Store — pluggable transcript/event sink
// ──────────────────────────────────────────────

// HistoryStore is the pluggable backend the director mirrors the
// session transcript and notable narrative events into, so a
// supervising host can read the session without touching engine state.
// Implementations must be safe for concurrent use.
type HistoryStore interface {
	// Transcript operations. Messages come back oldest first; a
	// limit above zero returns only the most recent entries.
	AppendMessage(session string, msg Message) error
	Messages(session string, limit int) ([]Message, error)
	TrimMessages(session string, max int) error

	// Narrative event mirror, same ordering and limit semantics.
	AppendEvent(session string, ev NarrativeEvent) error
	Events(session string, limit int) ([]NarrativeEvent, error)

	// Clear drops everything recorded for the session.
	Clear(session string) error
}

// InMemoryHistoryStore is the default backend. Data is lost on
// restart, which matches the engine's lifecycle.
type InMemoryHistoryStore struct {
	mu       sync.RWMutex
	messages map[string][]Message
	events   map[string][]NarrativeEvent
}

// NewInMemoryHistoryStore creates a new in-memory store.
func NewInMemoryHistoryStore() *InMemoryHistoryStore {
	return &InMemoryHistoryStore{
		messages: make(map[string][]Message),
		events:   make(map[string][]NarrativeEvent),
	}
}

func (s *InMemoryHistoryStore) AppendMessage(session string, msg Message) error {
	s.mu.Lock()
	s.messages[session] = append(s.messages[session], msg)
	s.mu.Unlock()
	return nil
}

func (s *InMemoryHistoryStore) Messages(session string, limit int) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.messages[session]
	if limit > 0 && limit < len(list) {
		list = list[len(list)-limit:]
	}
	out := make([]Message, len(list))
	copy(out, list)
	return out, nil
}

func (s *InMemoryHistoryStore) TrimMessages(session string, max int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.messages[session]
	if max > 0 && len(list) > max {
		s.messages[session] = append([]Message{}, list[len(list)-max:]...)
	}
	return nil
}

func (s *InMemoryHistoryStore) AppendEvent(session string, ev NarrativeEvent) error {
	s.mu.Lock()
	s.events[session] = append(s.events[session], ev)
	s.mu.Unlock()
	return nil
}

func (s *InMemoryHistoryStore) Events(session string, limit int) ([]NarrativeEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.events[session]
	if limit > 0 && limit < len(list) {
		list = list[len(list)-limit:]
	}
	out := make([]NarrativeEvent, len(list))
	copy(out, list)
	return out, nil
}

func (s *InMemoryHistoryStore) Clear(session string) error {
	s.mu.Lock()
	delete(s.messages, session)
	delete(s.events, session)
	s.mu.Unlock()
	return nil
}
