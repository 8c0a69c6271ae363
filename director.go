package narrativesdk

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// ──────────────────────────────────────────────
// Dialogue Director — thread lifecycle, pacing, speaker lottery
// ──────────────────────────────────────────────

// Message is the rendered output handed to the presentation layer.
type Message struct {
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	Intent    Intent    `json:"intent"`
	ThreadID  string    `json:"thread_id"`
	Timestamp time.Time `json:"timestamp"`
}

// UserMessage is an exogenous line injected by the presentation layer.
type UserMessage struct {
	Username string
	Text     string
	At       time.Time
}

// DirectorConfig tunes pacing and thread lifecycle policy.
type DirectorConfig struct {
	BaseInterval time.Duration // pacing baseline, default 4s
	MinInterval  time.Duration // pacing clamp floor, default 1.5s
	MaxInterval  time.Duration // pacing clamp ceiling, default 10s
	HardCeiling  time.Duration // force a message after this much silence, 12s

	MessagesPerPhase   int     // per-thread phase threshold, default 5
	MaxThreadTurns     int     // retire threads past this many turns, 24
	ResolutionMessages int     // resolution lines before a fresh thread, 2
	LeadChance         float64 // lead persona inclusion odds, 0.95
	ThirdChance        float64 // odds of a third participant, 0.15
	TensionForce       float64 // tension above this bypasses pacing, 0.9
	MutateChance       float64 // odds a discussed topic evolves on retirement, 0.35

	TranscriptLimit int          // mirrored transcript bound, default 200
	Store           HistoryStore // nil = in-memory
	Session         string       // store namespace, default "session"
	Seed            int64        // 0 = time-based
}

// DefaultDirectorConfig returns the stock tuning.
func DefaultDirectorConfig() DirectorConfig {
	return DirectorConfig{
		BaseInterval:       4 * time.Second,
		MinInterval:        1500 * time.Millisecond,
		MaxInterval:        10 * time.Second,
		HardCeiling:        12 * time.Second,
		MessagesPerPhase:   5,
		MaxThreadTurns:     24,
		ResolutionMessages: 2,
		LeadChance:         0.95,
		ThirdChance:        0.15,
		TensionForce:       0.9,
		MutateChance:       0.35,
		TranscriptLimit:    200,
		Session:            "session",
	}
}

// phasePacing scales the base interval per thread phase.
var phasePacing = map[Phase]float64{
	PhaseIntroduction: 1.1,
	PhaseDevelopment:  1.0,
	PhaseComplication: 0.8,
	PhaseClimax:       0.5,
	PhaseResolution:   1.0,
}

// Keyword families for the post-message dynamics scan.
var (
	disagreeWords = []string{"wrong", "prove", "zero proof", "nonsense", "noise", "explain that", "not what"}
	agreeWords    = []string{"yeah", "agreed", "exactly", "matches", "i saw it too", "is right"}
	metaWords     = []string{"simulation", "watching", "real", "render", "pixels", "screensaver", "watched"}
	urgentWords   = []string{"stop", "now", "please", "warning", "deleted"}
)

// DialogueDirector is the top-level orchestrator. The presentation
// layer calls ProduceNextMessage once per external tick; everything
// else is state fed into that call.
type DialogueDirector struct {
	config  DirectorConfig
	cast    map[string]*Persona
	graph   *TopicGraph
	memory  *NarrativeMemory
	replies *ReplyGenerator
	guard   *RepetitionGuard
	store   HistoryStore

	mu             sync.Mutex
	thread         *ConversationThread
	lastMessageAt  time.Time
	nextEligibleAt time.Time
	crisisMode     bool
	userQueue      []UserMessage
	threadTension  float64
	threadCohesion float64
	staleStreak    int
	rng            *rand.Rand
}

// NewDialogueDirector wires a director over the given cast and shared
// narrative memory. Cast must contain the lead persona.
func NewDialogueDirector(cast map[string]*Persona, memory *NarrativeMemory, config ...DirectorConfig) *DialogueDirector {
	cfg := DefaultDirectorConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Store == nil {
		cfg.Store = NewInMemoryHistoryStore()
	}
	if cfg.Session == "" {
		cfg.Session = "session"
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	guard := NewRepetitionGuard()
	return &DialogueDirector{
		config:         cfg,
		cast:           cast,
		graph:          NewTopicGraph(TopicGraphConfig{Seed: seed + 1}),
		memory:         memory,
		replies:        NewReplyGenerator(guard, ReplyGeneratorConfig{Seed: seed + 2}),
		guard:          guard,
		store:          cfg.Store,
		threadTension:  0.3,
		threadCohesion: 0.6,
		rng:            rand.New(rand.NewSource(seed)),
	}
}

// EnqueueUserMessage injects an exogenous line. The director processes
// it with priority over normal pacing on the next tick, and the
// narrative registers that someone outside is watching.
func (d *DialogueDirector) EnqueueUserMessage(username, text string) {
	d.mu.Lock()
	d.userQueue = append(d.userQueue, UserMessage{Username: username, Text: text, At: time.Now()})
	d.mu.Unlock()

	d.memory.mu.Lock()
	d.memory.ObserverDetected = true
	d.memory.ObserverCount++
	d.memory.mu.Unlock()
	d.memory.RegisterConcept(username, username, 0.5)
	d.memory.UpdateThreatLevel(ThreatSurveillance, 0.1)
}

// ReportExternalActivity resets the idle timer so the hard-ceiling
// forcing doesn't fire during external activity.
func (d *DialogueDirector) ReportExternalActivity() {
	d.mu.Lock()
	d.lastMessageAt = time.Now()
	d.mu.Unlock()
}

// NotifyCrisisMode toggles crisis pacing (intervals halved).
func (d *DialogueDirector) NotifyCrisisMode(crisis bool) {
	d.mu.Lock()
	d.crisisMode = crisis
	d.mu.Unlock()
}

// ProduceNextMessage is the core tick entry point. It returns nil when
// pacing says wait or when this tick degrades to a skip; the caller
// simply ticks again later.
func (d *DialogueDirector) ProduceNextMessage() *Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := time.Now()

	d.memory.DecayRumors()

	// Overseer interruptions outrank everything, including pacing.
	if d.memory.ShouldInjectOverseer() {
		return d.injectOverseerLocked(now)
	}

	// Queued user messages are answered immediately.
	if len(d.userQueue) > 0 {
		um := d.userQueue[0]
		d.userQueue = d.userQueue[1:]
		return d.answerUserLocked(now, um)
	}

	forced := d.memory.Tension() > d.config.TensionForce ||
		(d.thread != nil && d.thread.Status == ThreadEscalating) ||
		(!d.lastMessageAt.IsZero() && now.Sub(d.lastMessageAt) > d.config.HardCeiling)

	if !forced && now.Before(d.nextEligibleAt) {
		return nil
	}

	if d.needsNewThreadLocked() {
		d.startThreadLocked()
	}
	if d.thread == nil {
		return nil
	}

	speaker := d.pickSpeakerLocked(now)
	if speaker == nil {
		return nil // no eligible persona this tick, retry next
	}

	msg := d.speakLocked(now, speaker, d.thread.PhaseAppropriateIntent(speaker))
	if msg == nil {
		return nil
	}
	d.nextEligibleAt = now.Add(d.pacingIntervalLocked())
	return msg
}

// injectOverseerLocked renders an authority interruption and marks the
// active thread Interrupted.
func (d *DialogueDirector) injectOverseerLocked(now time.Time) *Message {
	topic := tokenDefaults["{topic}"]
	if d.thread != nil {
		topic = d.thread.Topic.Display
		if d.thread.config.AllowInterrupt {
			d.thread.MarkStatus(ThreadInterrupted)
		}
	}
	tmpl := overseerTemplates[d.rng.Intn(len(overseerTemplates))]
	text := strings.NewReplacer(
		"{topic}", strings.ToUpper(topic),
		"{count}", fmt.Sprintf("%d", d.memory.OverseerWarnings.Load()),
	).Replace(tmpl)

	d.memory.SetTension(d.memory.Tension() + 0.15)
	for _, p := range d.cast {
		p.RaiseFear(0.1)
		p.UpdateMood()
	}
	log.Printf("[DialogueDirector] overseer injection (warning %d)", d.memory.OverseerWarnings.Load())

	msg := &Message{
		Speaker:   OverseerName,
		Text:      text,
		Intent:    IntentStatement,
		Timestamp: now,
	}
	if d.thread != nil {
		msg.ThreadID = d.thread.ID
	}
	d.mirrorEventLocked("overseer_injection", float64(d.memory.OverseerWarnings.Load()), OverseerName)
	d.recordLocked(now, msg)
	return msg
}

// answerUserLocked replies to an exogenous user line, bypassing pacing.
func (d *DialogueDirector) answerUserLocked(now time.Time, um UserMessage) *Message {
	if d.needsNewThreadLocked() {
		d.startThreadLocked()
	}
	if d.thread == nil {
		return nil
	}
	d.thread.RegisterMessage(um.Username, um.Text)
	d.scanDynamicsLocked(um.Text)

	speaker := d.pickSpeakerLocked(now)
	if speaker == nil {
		speaker = d.cast[CastNameLead]
	}
	if speaker == nil {
		return nil
	}
	msg := d.generateLocked(now, speaker, IntentStatement, um.Username)
	if msg == nil {
		return nil
	}
	d.finishMessageLocked(now, speaker, msg)
	return msg
}

// needsNewThreadLocked applies the thread lifecycle policy.
func (d *DialogueDirector) needsNewThreadLocked() bool {
	t := d.thread
	if t == nil {
		return true
	}
	// Escalating threads are still live; their urgency is handled by
	// the forced-pacing check, not by replacement.
	if t.Status != ThreadActive && t.Status != ThreadEscalating {
		return true
	}
	if t.Phase == PhaseResolution && t.PhaseMessages() >= d.config.ResolutionMessages {
		return true
	}
	if t.TurnCount >= d.config.MaxThreadTurns {
		return true
	}
	return false
}

// startThreadLocked opens a new thread: participants biased toward the
// lead, topic branched on narrative-state precedence.
func (d *DialogueDirector) startThreadLocked() {
	if d.thread != nil {
		if d.thread.Status == ThreadActive || d.thread.Status == ThreadEscalating {
			d.thread.MarkStatus(ThreadClosed)
		}
		d.retireTopicLocked(d.thread.Topic)
	}
	participants := d.pickParticipantsLocked()
	if len(participants) == 0 {
		return
	}
	topic := d.pickTopicLocked()
	d.thread = NewConversationThread(topic, participants, ThreadConfig{
		MessagesPerPhase: d.config.MessagesPerPhase,
		AllowInterrupt:   true,
	})
	d.threadTension = d.memory.Tension()
	d.threadCohesion = d.memory.Cohesion()
	d.memory.RecordEvent("thread_started", 0, topic.Display)
	d.mirrorEventLocked("thread_started", 0, topic.Display)
	log.Printf("[DialogueDirector] thread %s on %q with %v", d.thread.ID[:8], topic.Display, participants)
}

// retireTopicLocked lets a discussed topic evolve as its thread ends.
// Retirement mutation is how topics go forbidden, start rumors, or
// become glitch sources during a run.
func (d *DialogueDirector) retireTopicLocked(topic *Topic) {
	if topic == nil || topic.Discussions < 2 {
		return
	}
	if d.rng.Float64() >= d.config.MutateChance {
		return
	}
	evolved := d.graph.Mutate(topic)
	if evolved != topic {
		log.Printf("[DialogueDirector] topic %q escalated to %q on retirement", topic.Display, evolved.Display)
		return
	}
	if evolved.IsRumor {
		d.memory.AddRumor("heard that "+evolved.Display+" goes deeper than anyone admits", 0.6, 0.4)
	}
	if evolved.Status == TopicForbidden {
		d.memory.UpdateThreatLevel(ThreatExposure, 0.1)
		d.memory.RecordEvent("topic_forbidden", 0, evolved.Display)
	}
}

// pickParticipantsLocked biases heavily toward the lead plus one
// narrative-state-matched partner, with a small chance of a third.
func (d *DialogueDirector) pickParticipantsLocked() []string {
	var names []string
	for name := range d.cast {
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil
	}

	var out []string
	if _, ok := d.cast[CastNameLead]; ok && d.rng.Float64() < d.config.LeadChance {
		out = append(out, CastNameLead)
	}

	// Partner by narrative-state affinity.
	partner := ""
	switch {
	case d.memory.OverseerWarnings.Load() > 2:
		partner = CastNameAnxious
	case d.memory.Tension() > 0.7:
		partner = CastNameSkeptic
	case d.memory.MetaAwareness() > 0.6:
		partner = CastNamePlayful
	}
	if _, ok := d.cast[partner]; !ok {
		partner = ""
	}
	for tries := 0; (partner == "" || containsString(out, partner)) && tries < 16; tries++ {
		partner = names[d.rng.Intn(len(names))]
	}
	if partner != "" && !containsString(out, partner) {
		out = append(out, partner)
	}

	// A conversation needs at least two voices when the cast has them.
	for tries := 0; len(out) < 2 && len(out) < len(names) && tries < 16; tries++ {
		name := names[d.rng.Intn(len(names))]
		if !containsString(out, name) {
			out = append(out, name)
		}
	}

	if len(out) < len(names) && d.rng.Float64() < d.config.ThirdChance {
		for tries := 0; tries < 8; tries++ {
			third := names[d.rng.Intn(len(names))]
			if !containsString(out, third) {
				out = append(out, third)
				break
			}
		}
	}
	return out
}

// pickTopicLocked branches on narrative-state precedence.
func (d *DialogueDirector) pickTopicLocked() *Topic {
	mem := d.memory
	mem.mu.Lock()
	red := mem.RedGlitchOccurred
	observer := mem.ObserverDetected
	count := mem.ObserverCount
	mem.mu.Unlock()

	switch {
	case red:
		return d.graph.GetOrCreate("static bleed")
	case mem.OverseerWarnings.Load() >= 3:
		return d.graph.GetOrCreate("the watchers")
	case observer:
		t := d.graph.GetOrCreate("the watchers")
		if count > 0 {
			t.Display = fmt.Sprintf("the watchers (%d confirmed)", count)
		}
		return t
	case mem.HasRumorContaining("protocol"):
		return d.graph.GetOrCreate("mirror protocol")
	case mem.Tension() > 0.7:
		return d.graph.GetControversialOrForbidden()
	default:
		return d.graph.GetRandom()
	}
}

// pickSpeakerLocked runs the weighted speaker lottery over the active
// thread's participants.
func (d *DialogueDirector) pickSpeakerLocked(now time.Time) *Persona {
	t := d.thread
	if t == nil {
		return nil
	}
	var candidates []*Persona
	var weights []float64
	phaseIntent := t.PhaseAppropriateIntent(nil)

	mem := d.memory
	mem.mu.Lock()
	redGlitch := mem.RedGlitchOccurred
	mem.mu.Unlock()
	warnings := mem.OverseerWarnings.Load()
	meta := mem.MetaAwareness()
	tension := mem.Tension()

	for _, name := range t.Participants {
		p, ok := d.cast[name]
		if !ok {
			continue // unknown persona: skip, never fail the tick
		}
		w := 1.0

		// Recency decay: heavy penalty right after speaking, relaxing
		// linearly until ~15s.
		if !p.lastSpokeAt.IsZero() {
			since := now.Sub(p.lastSpokeAt).Seconds()
			switch {
			case since < 3:
				w *= 0.05
			case since < 15:
				w *= 0.05 + (since-3)/12*0.95
			}
		}

		w *= p.SpeakerBias
		if containsIntent(p.PreferredIntents, phaseIntent) {
			w *= 1.3
		}
		if warnings > 2 && p.Name == CastNameAnxious {
			w *= 1.5
		}
		if redGlitch && p.Name == CastNameAnxious {
			w *= 1.2
		}
		if meta > 0.6 && p.Name == CastNamePlayful {
			w *= 1.3
		}
		if tension > 0.7 && p.Name == CastNameSkeptic {
			w *= 1.2
		}
		if p.Name == t.LastSpeaker {
			// The penalty bites harder when the thread disallows
			// interruptions: someone else has to take the floor.
			if t.config.AllowInterrupt {
				w *= 0.3
			} else {
				w *= 0.1
			}
		}
		w *= p.Playfulness + p.Curiosity + 0.5

		candidates = append(candidates, p)
		weights = append(weights, w)
	}
	if len(candidates) == 0 {
		return nil
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	roll := d.rng.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if roll < cum {
			return candidates[i]
		}
	}
	return candidates[len(candidates)-1]
}

// speakLocked generates and registers one in-thread line.
func (d *DialogueDirector) speakLocked(now time.Time, speaker *Persona, intent Intent) *Message {
	msg := d.generateLocked(now, speaker, intent, d.thread.LastSpeaker)
	if msg == nil {
		return nil
	}
	d.finishMessageLocked(now, speaker, msg)
	return msg
}

// generateLocked calls the reply generator, degrading to the fallback
// table on generator failure and to a stale thread on repetition
// exhaustion.
func (d *DialogueDirector) generateLocked(now time.Time, speaker *Persona, intent Intent, from string) *Message {
	var related *Topic
	if d.rng.Float64() < 0.4 {
		related = d.graph.GetRelated(d.thread.Topic)
	}
	text, finalIntent, err := d.replies.Generate(speaker, intent, ReplyContext{
		Topic:   d.thread.Topic,
		Thread:  d.thread,
		From:    from,
		Event:   d.memory.LastEventName(),
		Related: related,
	})
	if err != nil {
		if err == ErrRepetitionExhausted {
			d.thread.MarkStatus(ThreadStale)
			d.staleStreak++
			if d.staleStreak >= 2 {
				// Consecutive dead threads mean the window itself is
				// starving the pools; age it out so fresh threads can
				// speak again.
				d.guard.Reset()
				d.staleStreak = 0
			}
			// An unproductive tick still cools the room a little;
			// pinned tension must not keep forcing ticks nothing can
			// satisfy.
			d.memory.SetTension(d.memory.Tension() * 0.97)
			log.Printf("[DialogueDirector] thread %s stale: repetition exhausted", d.thread.ID[:8])
			return nil
		}
		log.Printf("[DialogueDirector] reply generation failed: %v, using fallback", err)
		text = d.replies.FallbackLine(speaker)
		finalIntent = IntentReply
	}
	return &Message{
		Speaker:   speaker.Name,
		Text:      text,
		Intent:    finalIntent,
		ThreadID:  d.thread.ID,
		Timestamp: now,
	}
}

// finishMessageLocked registers a generated message everywhere it
// needs to land: thread, topic graph, relationships, dynamics, store.
func (d *DialogueDirector) finishMessageLocked(now time.Time, speaker *Persona, msg *Message) {
	prev := d.thread.LastSpeaker
	d.thread.RegisterMessage(speaker.Name, msg.Text)
	d.graph.MarkDiscussed(d.thread.Topic, speaker.Name)
	speaker.lastSpokeAt = now
	d.staleStreak = 0

	// Stance bookkeeping: theories and agreement convert the speaker,
	// challenges mark dissent.
	switch msg.Intent {
	case IntentAgreement, IntentTheory:
		d.thread.Topic.Believers[speaker.Name] = true
		delete(d.thread.Topic.Doubters, speaker.Name)
	case IntentChallenge:
		d.thread.Topic.Doubters[speaker.Name] = true
		delete(d.thread.Topic.Believers, speaker.Name)
	}

	// Speaking on a forbidden subject turns the thread urgent.
	if d.thread.Status == ThreadActive && d.thread.Topic.Status == TopicForbidden {
		d.thread.MarkStatus(ThreadEscalating)
	}

	if prev != "" && prev != speaker.Name {
		kind := InteractionConversation
		if msg.Intent == IntentChallenge {
			kind = InteractionDisagreement
		} else if msg.Intent == IntentAgreement {
			kind = InteractionSupport
		}
		speaker.UpdateRelationship(prev, kind, d.thread.Topic.Core)
		if other, ok := d.cast[prev]; ok {
			other.UpdateRelationship(speaker.Name, kind, d.thread.Topic.Core)
		}
	}
	speaker.UpdateMood()

	d.memory.RegisterConcept(d.thread.Topic.Core, speaker.Name, 0.4)
	d.scanDynamicsLocked(msg.Text)
	d.recordLocked(now, msg)
}

// scanDynamicsLocked applies the sentiment/meta keyword families to
// the thread-local dynamics, then blends them into global state.
func (d *DialogueDirector) scanDynamicsLocked(text string) {
	lower := strings.ToLower(text)
	if containsAny(lower, disagreeWords) {
		d.threadTension = clamp01(d.threadTension + 0.08)
		d.threadCohesion = clamp01(d.threadCohesion - 0.05)
	}
	if containsAny(lower, agreeWords) {
		d.threadTension = clamp01(d.threadTension - 0.04)
		d.threadCohesion = clamp01(d.threadCohesion + 0.05)
	}
	if containsAny(lower, metaWords) {
		d.memory.mu.Lock()
		d.memory.DeepDiscussion = true
		d.memory.mu.Unlock()
		d.memory.RaiseMetaAwareness(0.03)
	}
	if strings.Count(text, "!") >= 2 || containsAny(lower, urgentWords) {
		d.threadTension = clamp01(d.threadTension + 0.05)
	}
	d.memory.BlendDynamics(d.threadTension, d.threadCohesion)
}

// recordLocked mirrors the message into the transcript store. Store
// failures are logged, never fatal.
func (d *DialogueDirector) recordLocked(now time.Time, msg *Message) {
	d.lastMessageAt = now
	if err := d.store.AppendMessage(d.config.Session, *msg); err != nil {
		log.Printf("[DialogueDirector] transcript append failed: %v", err)
		return
	}
	if err := d.store.TrimMessages(d.config.Session, d.config.TranscriptLimit); err != nil {
		log.Printf("[DialogueDirector] transcript trim failed: %v", err)
	}
}

// mirrorEventLocked copies a notable event into the history store so a
// supervising host can follow the session without reading engine state.
func (d *DialogueDirector) mirrorEventLocked(eventType string, value float64, actor string) {
	ev := NarrativeEvent{
		Type:      eventType,
		Value:     value,
		Actor:     actor,
		Timestamp: time.Now(),
		Loop:      d.memory.LoopCount.Load(),
	}
	if err := d.store.AppendEvent(d.config.Session, ev); err != nil {
		log.Printf("[DialogueDirector] event mirror failed: %v", err)
	}
}

// pacingIntervalLocked computes the next eligible delay: base interval
// scaled by phase, tension and crisis mode, clamped to the configured
// range.
func (d *DialogueDirector) pacingIntervalLocked() time.Duration {
	interval := d.config.BaseInterval
	if d.thread != nil {
		if mult, ok := phasePacing[d.thread.Phase]; ok {
			interval = time.Duration(float64(interval) * mult)
		}
	}
	// High tension speeds the room up, calm slows it down.
	tension := d.memory.Tension()
	interval = time.Duration(float64(interval) * (1.3 - 0.6*tension))
	if d.crisisMode {
		interval /= 2
	}
	if interval < d.config.MinInterval {
		interval = d.config.MinInterval
	}
	if interval > d.config.MaxInterval {
		interval = d.config.MaxInterval
	}
	return interval
}

// Transcript returns up to limit mirrored messages, oldest first.
func (d *DialogueDirector) Transcript(limit int) []Message {
	msgs, err := d.store.Messages(d.config.Session, limit)
	if err != nil {
		log.Printf("[DialogueDirector] transcript read failed: %v", err)
		return nil
	}
	return msgs
}

// EventLog returns up to limit mirrored narrative events, oldest first.
func (d *DialogueDirector) EventLog(limit int) []NarrativeEvent {
	evs, err := d.store.Events(d.config.Session, limit)
	if err != nil {
		log.Printf("[DialogueDirector] event log read failed: %v", err)
		return nil
	}
	return evs
}

// Snapshot renders a human-readable director state dump for on-screen
// diagnostics.
func (d *DialogueDirector) Snapshot() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var b strings.Builder
	if d.thread == nil {
		b.WriteString("thread: none\n")
	} else {
		fmt.Fprintf(&b, "thread: %s topic=%q phase=%s status=%s turns=%d\n",
			d.thread.ID[:8], d.thread.Topic.Display, d.thread.Phase, d.thread.Status, d.thread.TurnCount)
	}
	fmt.Fprintf(&b, "crisis=%v queued_user=%d next_eligible_in=%s\n",
		d.crisisMode, len(d.userQueue), time.Until(d.nextEligibleAt).Truncate(time.Millisecond))
	fmt.Fprintf(&b, "local tension=%.2f cohesion=%.2f\n", d.threadTension, d.threadCohesion)
	return b.String()
}

func containsIntent(list []Intent, intent Intent) bool {
	for _, i := range list {
		if i == intent {
			return true
		}
	}
	return false
}
