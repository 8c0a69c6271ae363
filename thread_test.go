package narrativesdk

import (
	"fmt"
	"testing"
)

func testTopic(core string) *Topic {
	g := NewTopicGraph(TopicGraphConfig{Seed: 1})
	return g.GetOrCreate(core)
}

func TestThread_PhaseNeverDecreases(t *testing.T) {
	th := NewConversationThread(testTopic("loop theory"), []string{"Orion", "Vesper"}, ThreadConfig{MessagesPerPhase: 2})

	prev := th.Phase
	for i := 0; i < 20; i++ {
		th.RegisterMessage("Orion", fmt.Sprintf("line %d", i))
		if th.Phase < prev {
			t.Fatalf("phase decreased from %s to %s", prev, th.Phase)
		}
		prev = th.Phase
	}
	if th.Phase != PhaseResolution {
		t.Fatalf("expected resolution after 20 messages, got %s", th.Phase)
	}
	if th.Status != ThreadStale {
		t.Fatalf("exhausted resolution must go stale, got %s", th.Status)
	}
}

func TestThread_StatusNeverReactivates(t *testing.T) {
	th := NewConversationThread(testTopic("room 9"), []string{"Orion"})

	th.MarkStatus(ThreadStale)
	th.MarkStatus(ThreadActive)
	if th.Status != ThreadStale {
		t.Fatalf("stale thread must not reactivate, got %s", th.Status)
	}

	th.MarkStatus(ThreadClosed)
	th.MarkStatus(ThreadEscalating)
	if th.Status != ThreadClosed {
		t.Fatalf("closed is terminal, got %s", th.Status)
	}
}

func TestThread_PhaseAdvancesOnThreshold(t *testing.T) {
	th := NewConversationThread(testTopic("deja vu"), []string{"Orion"}, ThreadConfig{MessagesPerPhase: 3})

	for i := 0; i < 2; i++ {
		th.RegisterMessage("Orion", "x")
	}
	if th.Phase != PhaseIntroduction {
		t.Fatalf("phase advanced early: %s", th.Phase)
	}
	th.RegisterMessage("Orion", "x")
	if th.Phase != PhaseDevelopment {
		t.Fatalf("expected development after threshold, got %s", th.Phase)
	}
	if th.PhaseMessages() != 0 {
		t.Fatal("phase counter must reset on advancement")
	}
}

func TestThread_PhaseAppropriateIntent(t *testing.T) {
	th := NewConversationThread(testTopic("the pattern"), []string{"Orion"})

	cases := map[Phase]Intent{
		PhaseIntroduction: IntentQuestion,
		PhaseDevelopment:  IntentTheory,
		PhaseComplication: IntentChallenge,
		PhaseClimax:       IntentFear,
		PhaseResolution:   IntentStatement,
	}
	for phase, want := range cases {
		th.Phase = phase
		if got := th.PhaseAppropriateIntent(nil); got != want {
			t.Fatalf("phase %s: expected %s, got %s", phase, want, got)
		}
	}
}

func TestThread_PersonaPreferenceOverridesMiddlePhases(t *testing.T) {
	th := NewConversationThread(testTopic("static bleed"), []string{"Quill"})
	quill := DefaultCast()[CastNameSkeptic]

	th.Phase = PhaseDevelopment
	if got := th.PhaseAppropriateIntent(quill); got != quill.PreferredIntents[0] {
		t.Fatalf("expected persona preference, got %s", got)
	}
}

func TestThread_UniqueIDs(t *testing.T) {
	a := NewConversationThread(testTopic("loop theory"), []string{"Orion"})
	b := NewConversationThread(testTopic("loop theory"), []string{"Orion"})
	if a.ID == b.ID {
		t.Fatal("thread ids must be unique")
	}
}
