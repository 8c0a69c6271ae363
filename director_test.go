package narrativesdk

import (
	"testing"
	"time"
)

// quietMemory returns a memory whose overseer hazard can never fire,
// keeping director tests deterministic.
func quietMemory(seed int64) *NarrativeMemory {
	cfg := DefaultNarrativeConfig()
	cfg.Seed = seed
	cfg.OverseerBaseChance = 0
	cfg.OverseerCooldown = time.Hour
	m := NewNarrativeMemory(cfg)
	m.lastOverseerAt = time.Now() // belt and braces: cooldown also gates
	return m
}

func testDirector(seed int64) (*DialogueDirector, *NarrativeMemory) {
	m := quietMemory(seed)
	cfg := DefaultDirectorConfig()
	cfg.Seed = seed
	d := NewDialogueDirector(DefaultCast(), m, cfg)
	return d, m
}

// tickNow forces one pacing-eligible tick.
func tickNow(d *DialogueDirector) *Message {
	d.mu.Lock()
	d.nextEligibleAt = time.Time{}
	d.mu.Unlock()
	return d.ProduceNextMessage()
}

func TestDirector_FirstTickProducesMessage(t *testing.T) {
	d, _ := testDirector(1)

	msg := d.ProduceNextMessage()
	if msg == nil {
		t.Fatal("first tick must open a thread and speak")
	}
	if _, ok := DefaultCast()[msg.Speaker]; !ok {
		t.Fatalf("unexpected speaker %q", msg.Speaker)
	}
	if msg.Text == "" || msg.ThreadID == "" {
		t.Fatalf("incomplete message: %+v", msg)
	}
}

func TestDirector_PacingBlocksImmediateFollowup(t *testing.T) {
	d, _ := testDirector(2)

	if msg := d.ProduceNextMessage(); msg == nil {
		t.Fatal("first tick must produce")
	}
	if msg := d.ProduceNextMessage(); msg != nil {
		t.Fatalf("second tick inside the pacing window must wait, got %q", msg.Text)
	}
}

func TestDirector_HighTensionBypassesPacing(t *testing.T) {
	d, m := testDirector(3)

	if d.ProduceNextMessage() == nil {
		t.Fatal("first tick must produce")
	}
	m.SetTension(0.95)
	if d.ProduceNextMessage() == nil {
		t.Fatal("tension above the force threshold must bypass pacing")
	}
}

func TestDirector_UserMessageBypassesPacing(t *testing.T) {
	d, m := testDirector(4)
	m.SetTension(0.95)

	d.mu.Lock()
	d.nextEligibleAt = time.Now().Add(time.Hour) // pacing says wait
	d.mu.Unlock()

	d.EnqueueUserMessage("observer_17", "can you all see me?")
	msg := d.ProduceNextMessage()
	if msg == nil {
		t.Fatal("queued user message must be answered within one tick")
	}
	if msg.Speaker == OverseerName {
		t.Fatalf("expected a cast reply, got %q", msg.Speaker)
	}
	if !m.ObserverDetected {
		t.Fatal("user message must register the observer")
	}
	if m.ObserverCount != 1 {
		t.Fatalf("observer count = %d, want 1", m.ObserverCount)
	}
}

func TestDirector_NewThreadAfterResolution(t *testing.T) {
	d, _ := testDirector(5)

	first := tickNow(d)
	if first == nil {
		t.Fatal("first tick must produce")
	}
	oldID := d.thread.ID

	// Park the thread at Resolution with enough resolution messages.
	d.thread.Phase = PhaseResolution
	d.thread.RegisterMessage("Orion", "so that settles it")
	d.thread.RegisterMessage("Quill", "for now")

	msg := tickNow(d)
	if msg == nil {
		t.Fatal("tick after resolution must open a fresh thread and speak")
	}
	if d.thread.ID == oldID {
		t.Fatal("resolved thread must be replaced, not reused")
	}
	if msg.ThreadID == "" || msg.ThreadID == oldID {
		t.Fatalf("message must belong to the new thread, got %q", msg.ThreadID)
	}
}

func TestDirector_StaleThreadReplaced(t *testing.T) {
	d, _ := testDirector(6)

	if tickNow(d) == nil {
		t.Fatal("first tick must produce")
	}
	oldID := d.thread.ID
	d.thread.MarkStatus(ThreadStale)

	if tickNow(d) == nil {
		t.Fatal("tick after staleness must produce from a fresh thread")
	}
	if d.thread.ID == oldID {
		t.Fatal("stale thread must be replaced")
	}
}

func TestDirector_OverseerInterruptsThread(t *testing.T) {
	cfg := DefaultNarrativeConfig()
	cfg.Seed = 7
	cfg.OverseerBaseChance = 1.0 // certain fire
	cfg.OverseerCooldown = time.Hour
	m := NewNarrativeMemory(cfg)

	dcfg := DefaultDirectorConfig()
	dcfg.Seed = 7
	d := NewDialogueDirector(DefaultCast(), m, dcfg)

	// Seed an active thread first by gating the hazard once.
	m.lastOverseerAt = time.Now()
	if tickNow(d) == nil {
		t.Fatal("setup tick must produce")
	}
	threadID := d.thread.ID

	m.lastOverseerAt = time.Time{} // release the cooldown
	tensionBefore := m.Tension()
	msg := tickNow(d)
	if msg == nil || msg.Speaker != OverseerName {
		t.Fatalf("expected overseer interruption, got %+v", msg)
	}
	if d.thread.Status != ThreadInterrupted {
		t.Fatalf("active thread must be interrupted, got %s", d.thread.Status)
	}
	if msg.ThreadID != threadID {
		t.Fatal("interruption must reference the interrupted thread")
	}
	if m.Tension() <= tensionBefore {
		t.Fatal("interruption must raise tension")
	}
	if m.OverseerWarnings.Load() != 1 {
		t.Fatalf("warning count = %d, want 1", m.OverseerWarnings.Load())
	}
}

func TestDirector_SpeakersVary(t *testing.T) {
	d, _ := testDirector(8)

	speakers := make(map[string]bool)
	for i := 0; i < 30; i++ {
		if msg := tickNow(d); msg != nil {
			speakers[msg.Speaker] = true
		}
	}
	if len(speakers) < 2 {
		t.Fatalf("speaker lottery must rotate the cast, got %v", speakers)
	}
}

func TestDirector_TranscriptMirrored(t *testing.T) {
	d, _ := testDirector(9)

	produced := 0
	for i := 0; i < 10 && produced < 3; i++ {
		if tickNow(d) != nil {
			produced++
		}
	}
	if produced == 0 {
		t.Fatal("no messages produced")
	}

	transcript := d.Transcript(0)
	if len(transcript) != produced {
		t.Fatalf("transcript length %d, want %d", len(transcript), produced)
	}
	for _, m := range transcript {
		if m.Speaker == "" || m.Text == "" {
			t.Fatalf("malformed transcript entry: %+v", m)
		}
	}
}

func TestDirector_CrisisHalvesPacing(t *testing.T) {
	d, _ := testDirector(10)
	if tickNow(d) == nil {
		t.Fatal("setup tick must produce")
	}

	d.mu.Lock()
	normal := d.pacingIntervalLocked()
	d.crisisMode = true
	crisis := d.pacingIntervalLocked()
	d.mu.Unlock()

	if crisis >= normal && crisis != d.config.MinInterval {
		t.Fatalf("crisis pacing must shorten the interval: %s vs %s", crisis, normal)
	}
}

func TestDirector_TopicPrecedenceRedGlitch(t *testing.T) {
	d, m := testDirector(11)
	m.AddGlitchEvent("red cascade", "x", 3.0)

	if tickNow(d) == nil {
		t.Fatal("tick must produce")
	}
	if d.thread.Topic.Core != "static bleed" {
		t.Fatalf("red glitch must force the thematic topic, got %q", d.thread.Topic.Core)
	}
}

func TestDirector_HardCeilingForcesMessage(t *testing.T) {
	d, _ := testDirector(20)
	if d.ProduceNextMessage() == nil {
		t.Fatal("setup tick must produce")
	}

	d.mu.Lock()
	d.lastMessageAt = time.Now().Add(-time.Minute) // silent past the ceiling
	d.nextEligibleAt = time.Now().Add(time.Hour)
	d.mu.Unlock()

	if d.ProduceNextMessage() == nil {
		t.Fatal("silence past the hard ceiling must force a message")
	}
}

func TestDirector_ThreadRetirementMutatesTopics(t *testing.T) {
	d, m := testDirector(14)
	d.config.MutateChance = 1
	d.graph.config.EscalateChance = 0 // mutate in place, never hop
	d.graph.config.RumorChance = 1    // every mutation starts a rumor

	if tickNow(d) == nil {
		t.Fatal("setup tick must produce")
	}
	old := d.thread.Topic
	old.Discussions = 3

	d.thread.Phase = PhaseResolution
	d.thread.RegisterMessage(CastNameLead, "so that settles it")
	d.thread.RegisterMessage(CastNameSkeptic, "for now")
	if tickNow(d) == nil {
		t.Fatal("retirement tick must produce")
	}

	if old.Status == TopicNeutral && old.Display == old.Core {
		t.Fatalf("retired topic must evolve, got %+v", old)
	}
	if !old.IsRumor {
		t.Fatal("mutation with certain rumor odds must flag the topic")
	}
	if !m.HasRumorContaining(old.Core) {
		t.Fatal("a rumor topic must seed a narrative rumor on retirement")
	}
}

func TestDirector_RecoversFromPinnedTension(t *testing.T) {
	d, m := testDirector(15)

	produced := 0
	lastAt := -1
	for i := 0; i < 400; i++ {
		m.SetTension(0.95) // every tick forced
		if tickNow(d) != nil {
			produced++
			lastAt = i
		}
	}
	if produced < 50 {
		t.Fatalf("pinned tension starved production: %d messages", produced)
	}
	if lastAt < 350 {
		t.Fatalf("production stopped at tick %d; stale threads must not livelock the engine", lastAt)
	}
}

func TestDirector_ForbiddenTopicEscalatesThread(t *testing.T) {
	d, _ := testDirector(16)
	if tickNow(d) == nil {
		t.Fatal("setup tick must produce")
	}

	d.thread.Topic.Status = TopicForbidden
	if tickNow(d) == nil {
		t.Fatal("tick on the forbidden topic must produce")
	}
	if d.thread.Status != ThreadEscalating {
		t.Fatalf("forbidden topic must escalate the thread, got %s", d.thread.Status)
	}

	// Escalating threads bypass pacing and keep their identity.
	id := d.thread.ID
	d.mu.Lock()
	d.nextEligibleAt = time.Now().Add(time.Hour)
	d.mu.Unlock()
	if d.ProduceNextMessage() == nil {
		t.Fatal("escalating thread must force the next tick")
	}
	if d.thread.ID != id {
		t.Fatal("escalating thread must not be replaced")
	}
}

func repeatSpeakerCount(t *testing.T, allowInterrupt bool, seed int64) int {
	t.Helper()
	cfg := DefaultDirectorConfig()
	cfg.Seed = seed
	d := NewDialogueDirector(DefaultCast(), quietMemory(seed), cfg)
	th := NewConversationThread(
		d.graph.GetOrCreate("room 9"),
		[]string{CastNameLead, CastNameAnxious},
		ThreadConfig{MessagesPerPhase: 5, AllowInterrupt: allowInterrupt},
	)
	th.LastSpeaker = CastNameLead
	d.thread = th

	repeats := 0
	now := time.Now()
	d.mu.Lock()
	for i := 0; i < 400; i++ {
		if d.pickSpeakerLocked(now).Name == CastNameLead {
			repeats++
		}
	}
	d.mu.Unlock()
	return repeats
}

func TestDirector_NoInterruptPenalizesRepeatSpeakerHarder(t *testing.T) {
	loose := repeatSpeakerCount(t, true, 17)
	strict := repeatSpeakerCount(t, false, 17)
	if strict >= loose {
		t.Fatalf("repeat speaker picked %d times without interrupts vs %d with; the penalty must bite harder", strict, loose)
	}
}

func TestDirector_IntentsShapeBelieversAndDoubters(t *testing.T) {
	d, _ := testDirector(18)
	if tickNow(d) == nil {
		t.Fatal("setup tick must produce")
	}
	topic := d.thread.Topic
	orion := d.cast[CastNameLead]
	quill := d.cast[CastNameSkeptic]

	d.mu.Lock()
	d.finishMessageLocked(time.Now(), orion, &Message{Speaker: orion.Name, Text: "agreed, it matches", Intent: IntentAgreement, ThreadID: d.thread.ID})
	d.finishMessageLocked(time.Now(), quill, &Message{Speaker: quill.Name, Text: "zero proof", Intent: IntentChallenge, ThreadID: d.thread.ID})
	d.mu.Unlock()

	if !topic.Believers[orion.Name] {
		t.Fatal("agreement must register the speaker as a believer")
	}
	if !topic.Doubters[quill.Name] {
		t.Fatal("a challenge must register the speaker as a doubter")
	}

	// Conversion flips the stance rather than holding both.
	d.mu.Lock()
	d.finishMessageLocked(time.Now(), orion, &Message{Speaker: orion.Name, Text: "actually, prove it", Intent: IntentChallenge, ThreadID: d.thread.ID})
	d.mu.Unlock()
	if topic.Believers[orion.Name] || !topic.Doubters[orion.Name] {
		t.Fatal("a challenge must convert a believer into a doubter")
	}
}

func TestDirector_EventLogMirrorsThreadStarts(t *testing.T) {
	d, _ := testDirector(21)
	if tickNow(d) == nil {
		t.Fatal("first tick must produce")
	}

	evs := d.EventLog(0)
	if len(evs) == 0 {
		t.Fatal("thread start must be mirrored into the event log")
	}
	if evs[0].Type != "thread_started" {
		t.Fatalf("expected thread_started, got %q", evs[0].Type)
	}
}

func TestDirector_ConcurrentEnqueueAndTick(t *testing.T) {
	d, _ := testDirector(19)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			d.EnqueueUserMessage("observer", "hello in there")
		}
	}()
	for i := 0; i < 50; i++ {
		tickNow(d)
	}
	<-done
}

func TestDirector_ExternalActivityResetsIdleTimer(t *testing.T) {
	d, _ := testDirector(13)

	d.mu.Lock()
	d.lastMessageAt = time.Now().Add(-time.Minute) // idle past the hard ceiling
	d.nextEligibleAt = time.Now().Add(time.Hour)
	d.mu.Unlock()

	d.ReportExternalActivity()
	if msg := d.ProduceNextMessage(); msg != nil {
		t.Fatalf("fresh external activity must clear the idle forcing, got %+v", msg)
	}
}

func TestDirector_UnknownParticipantsSkipTick(t *testing.T) {
	d, _ := testDirector(12)

	if tickNow(d) == nil {
		t.Fatal("setup tick must produce")
	}
	// Replace the participant set with names outside the cast: the
	// lottery must skip the tick rather than fail.
	d.thread.Participants = []string{"ghost_a", "ghost_b"}
	if msg := tickNow(d); msg != nil {
		t.Fatalf("tick with no known participants must skip, got %+v", msg)
	}
}
