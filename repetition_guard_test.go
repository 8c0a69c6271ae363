package narrativesdk

import (
	"fmt"
	"testing"
)

func TestRepetitionGuard_NearDuplicate(t *testing.T) {
	g := NewRepetitionGuard()

	g.RecordLine("the pattern in the redacted logs keeps shifting overnight")

	if !g.IsNearDuplicate("the pattern in the redacted logs keeps shifting overnight") {
		t.Fatal("identical line must be a near-duplicate")
	}
	if !g.IsNearDuplicate("the pattern in those redacted logs keeps shifting again overnight") {
		t.Fatal("high-overlap variant must be a near-duplicate")
	}
	if g.IsNearDuplicate("static bleed correlates with the numbers station broadcast") {
		t.Fatal("unrelated line must pass")
	}
}

func TestRepetitionGuard_WindowEviction(t *testing.T) {
	g := NewRepetitionGuard(RepetitionGuardConfig{
		Enabled:          true,
		OverlapThreshold: 0.7,
		WindowSize:       3,
		MaxIntentRun:     2,
		IntentWindow:     8,
	})

	old := "terminal ghosts haunt the midnight handshake routine"
	g.RecordLine(old)
	for i := 0; i < 3; i++ {
		g.RecordLine(fmt.Sprintf("filler line number %d about cold storage archive drift", i))
	}

	if g.IsNearDuplicate(old) {
		t.Fatal("line evicted from the window must no longer match")
	}
}

func TestRepetitionGuard_QuestionRun(t *testing.T) {
	g := NewRepetitionGuard()

	g.RecordIntent(IntentQuestion)
	if g.QuestionRunExceeded(IntentQuestion) {
		t.Fatal("a single question must not trip the guard")
	}
	g.RecordIntent(IntentChallenge)
	if !g.QuestionRunExceeded(IntentQuestion) {
		t.Fatal("two question-like intents running must trip the guard")
	}
	if g.QuestionRunExceeded(IntentStatement) {
		t.Fatal("non-interrogative intents are never capped")
	}

	// A statement breaks the run.
	g.RecordIntent(IntentStatement)
	if g.QuestionRunExceeded(IntentQuestion) {
		t.Fatal("run must reset after a non-question intent")
	}
}

func TestRepetitionGuard_DisabledPassesEverything(t *testing.T) {
	cfg := DefaultRepetitionGuardConfig()
	cfg.Enabled = false
	g := NewRepetitionGuard(cfg)

	g.RecordLine("same line")
	if g.IsNearDuplicate("same line") {
		t.Fatal("disabled guard must not filter")
	}
}
