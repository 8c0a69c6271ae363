package narrativesdk

import (
	"time"

	"github.com/google/uuid"
)

// ──────────────────────────────────────────────
// Conversation Thread — phase state machine
// ──────────────────────────────────────────────

// Phase is the thread's narrative progress stage. Phases only ever
// advance; a thread never moves backwards.
type Phase int

const (
	PhaseIntroduction Phase = iota
	PhaseDevelopment
	PhaseComplication
	PhaseClimax
	PhaseResolution
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIntroduction:
		return "introduction"
	case PhaseDevelopment:
		return "development"
	case PhaseComplication:
		return "complication"
	case PhaseClimax:
		return "climax"
	case PhaseResolution:
		return "resolution"
	default:
		return "unknown"
	}
}

// ThreadStatus is orthogonal to Phase. Once a thread leaves Active it
// is never reactivated; the director starts a fresh one instead.
type ThreadStatus string

const (
	ThreadActive      ThreadStatus = "active"
	ThreadEscalating  ThreadStatus = "escalating"
	ThreadInterrupted ThreadStatus = "interrupted"
	ThreadStale       ThreadStatus = "stale"
	ThreadClosed      ThreadStatus = "closed"
)

// ThreadConfig tunes phase advancement.
type ThreadConfig struct {
	MessagesPerPhase int // phase advances after this many messages, default 5
	AllowInterrupt   bool
}

// DefaultThreadConfig returns the stock thresholds.
func DefaultThreadConfig() ThreadConfig {
	return ThreadConfig{MessagesPerPhase: 5, AllowInterrupt: true}
}

// ConversationThread binds a topic and a participant subset to the
// phase state machine. It keeps a local line history for repetition
// checks scoped to this episode.
type ConversationThread struct {
	ID           string
	Topic        *Topic
	Participants []string
	LastSpeaker  string
	TurnCount    int
	Phase        Phase
	Status       ThreadStatus
	LastActivity time.Time

	config        ThreadConfig
	phaseMessages int
	history       []string
}

// NewConversationThread opens a fresh Active thread at Introduction.
func NewConversationThread(topic *Topic, participants []string, config ...ThreadConfig) *ConversationThread {
	cfg := DefaultThreadConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	return &ConversationThread{
		ID:           uuid.NewString(),
		Topic:        topic,
		Participants: participants,
		Phase:        PhaseIntroduction,
		Status:       ThreadActive,
		LastActivity: time.Now(),
		config:       cfg,
	}
}

// RegisterMessage records a line, advances turn counters, and steps
// the phase once the per-phase threshold is exceeded. Triggering the
// threshold again at Resolution marks the thread Stale.
func (t *ConversationThread) RegisterMessage(speaker, text string) {
	t.TurnCount++
	t.phaseMessages++
	t.LastSpeaker = speaker
	t.LastActivity = time.Now()
	t.history = append(t.history, text)
	if len(t.history) > 50 {
		t.history = t.history[len(t.history)-50:]
	}

	if t.phaseMessages < t.config.MessagesPerPhase {
		return
	}
	t.phaseMessages = 0
	if t.Phase < PhaseResolution {
		t.Phase++
		return
	}
	// Resolution already reached and the threshold fired again.
	t.MarkStatus(ThreadStale)
}

// MarkStatus moves the thread off Active. Transitions back to Active
// are ignored; a closed episode stays closed.
func (t *ConversationThread) MarkStatus(status ThreadStatus) {
	if t.Status != ThreadActive && status == ThreadActive {
		return
	}
	if t.Status == ThreadClosed {
		return
	}
	t.Status = status
}

// PhaseMessages reports how many messages landed in the current phase.
func (t *ConversationThread) PhaseMessages() int {
	return t.phaseMessages
}

// History returns the thread-local line log, newest last.
func (t *ConversationThread) History() []string {
	return t.history
}

// HasParticipant reports whether name takes part in this thread.
func (t *ConversationThread) HasParticipant(name string) bool {
	for _, p := range t.Participants {
		if p == name {
			return true
		}
	}
	return false
}

// PhaseAppropriateIntent maps the current phase to its default intent
// bias. Personas with preferred intents override it downstream.
func (t *ConversationThread) PhaseAppropriateIntent(p *Persona) Intent {
	if p != nil && len(p.PreferredIntents) > 0 {
		// Persona preference wins during middle phases.
		if t.Phase == PhaseDevelopment || t.Phase == PhaseComplication {
			return p.PreferredIntents[0]
		}
	}
	switch t.Phase {
	case PhaseIntroduction:
		return IntentQuestion
	case PhaseDevelopment:
		return IntentTheory
	case PhaseComplication:
		return IntentChallenge
	case PhaseClimax:
		return IntentFear
	default:
		return IntentStatement
	}
}
