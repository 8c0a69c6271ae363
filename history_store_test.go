package narrativesdk

import (
	"fmt"
	"testing"
)

func TestInMemoryHistoryStore_TranscriptRoundTrip(t *testing.T) {
	s := NewInMemoryHistoryStore()

	for i := 0; i < 5; i++ {
		err := s.AppendMessage("session", Message{Speaker: "Orion", Text: fmt.Sprintf("line %d", i)})
		if err != nil {
			t.Fatalf("AppendMessage: %v", err)
		}
	}

	msgs, err := s.Messages("session", 3)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(msgs) != 3 || msgs[0].Text != "line 2" || msgs[2].Text != "line 4" {
		t.Fatalf("Messages(3) = %v, want the most recent three oldest first", msgs)
	}

	if err := s.TrimMessages("session", 2); err != nil {
		t.Fatalf("TrimMessages: %v", err)
	}
	msgs, _ = s.Messages("session", 0)
	if len(msgs) != 2 || msgs[0].Text != "line 3" {
		t.Fatalf("after trim = %v, want lines 3..4", msgs)
	}
}

func TestInMemoryHistoryStore_EventsAndClear(t *testing.T) {
	s := NewInMemoryHistoryStore()

	if err := s.AppendEvent("session", NarrativeEvent{Type: "thread_started", Actor: "loop theory"}); err != nil {
		t.Fatalf("AppendEvent: %v", err)
	}
	evs, err := s.Events("session", 0)
	if err != nil || len(evs) != 1 || evs[0].Type != "thread_started" {
		t.Fatalf("Events = %v, %v", evs, err)
	}

	s.AppendMessage("session", Message{Speaker: "Quill", Text: "x"})
	if err := s.Clear("session"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if msgs, _ := s.Messages("session", 0); len(msgs) != 0 {
		t.Fatalf("messages must clear, got %v", msgs)
	}
	if evs, _ := s.Events("session", 0); len(evs) != 0 {
		t.Fatalf("events must clear, got %v", evs)
	}
}
