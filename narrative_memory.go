package narrativesdk

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// ──────────────────────────────────────────────
// Narrative Memory — process-wide mutable story state
// ──────────────────────────────────────────────

// ThreatKind categorizes narrative danger accumulation.
type ThreatKind string

const (
	ThreatSurveillance       ThreatKind = "surveillance"
	ThreatRealityQuestioning ThreatKind = "reality_questioning"
	ThreatDeletion           ThreatKind = "deletion"
	ThreatExposure           ThreatKind = "exposure"
)

// threatResponseThreshold is where a threat kind triggers its one-shot
// narrative response.
const threatResponseThreshold = 0.7

// NarrativeEvent is one entry of the rolling event history.
type NarrativeEvent struct {
	Type      string    `json:"type"`
	Value     float64   `json:"value"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Loop      int64     `json:"loop"`
}

// Concept tracks a named idea the cast keeps returning to.
type Concept struct {
	Name         string  `json:"name"`
	Mentions     int     `json:"mentions"`
	Importance   float64 `json:"importance"`
	IntroducedBy string  `json:"introduced_by"`
}

// Rumor is an active piece of unverified lore. Strength decays each
// housekeeping pass; dead rumors are dropped.
type Rumor struct {
	Text        string  `json:"text"`
	Strength    float64 `json:"strength"`
	Credibility float64 `json:"credibility"`
	Decay       float64 `json:"decay"`
}

// NarrativeConfig tunes thresholds and the overseer hazard.
type NarrativeConfig struct {
	MaxEvents          int           // rolling history bound, default 100
	OverseerBaseChance float64       // default 0.02
	OverseerCooldown   time.Duration // minimum gap between injections
	CountFactor        float64       // per loop/glitch/warning hazard growth
	RedGlitchSeverity  float64       // severity that forces the red flag
	Seed               int64         // 0 = time-based
}

// DefaultNarrativeConfig returns the stock tuning.
func DefaultNarrativeConfig() NarrativeConfig {
	return NarrativeConfig{
		MaxEvents:          100,
		OverseerBaseChance: 0.02,
		OverseerCooldown:   90 * time.Second,
		CountFactor:        0.01,
		RedGlitchSeverity:  2.5,
	}
}

// NarrativeMemory is the single shared story-state object. Every
// component reads it, most write to it. Create once, inject explicitly.
type NarrativeMemory struct {
	config NarrativeConfig

	// Counters are atomic so debug snapshots can read them without the
	// state mutex.
	LoopCount        *atomic.Int64
	GlitchCount      *atomic.Int64
	OverseerWarnings *atomic.Int64

	mu            sync.Mutex
	tension       float64
	paranoia      float64
	metaAwareness float64
	cohesion      float64

	ObserverDetected            bool
	SystemCompromised           bool
	RedGlitchOccurred           bool
	CharactersSuspectSimulation bool
	DeepDiscussion              bool
	ObserverCount               int

	threatLevels    map[ThreatKind]float64
	respondedThreat map[ThreatKind]bool
	events          []NarrativeEvent
	concepts        map[string]*Concept
	rumors          []*Rumor

	lastOverseerAt time.Time
	rng            *rand.Rand
}

// NewNarrativeMemory creates a fresh narrative state at loop zero.
func NewNarrativeMemory(config ...NarrativeConfig) *NarrativeMemory {
	cfg := DefaultNarrativeConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.MaxEvents <= 0 {
		cfg.MaxEvents = 100
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &NarrativeMemory{
		config:           cfg,
		LoopCount:        atomic.NewInt64(0),
		GlitchCount:      atomic.NewInt64(0),
		OverseerWarnings: atomic.NewInt64(0),
		tension:          0.3,
		paranoia:         0.2,
		metaAwareness:    0.1,
		cohesion:         0.6,
		threatLevels:     make(map[ThreatKind]float64),
		respondedThreat:  make(map[ThreatKind]bool),
		concepts:         make(map[string]*Concept),
		rng:              rand.New(rand.NewSource(seed)),
	}
}

// Tension returns the global tension scalar.
func (m *NarrativeMemory) Tension() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tension
}

// SetTension clamps and stores the global tension.
func (m *NarrativeMemory) SetTension(v float64) {
	m.mu.Lock()
	m.tension = clamp01(v)
	m.mu.Unlock()
}

// Paranoia returns the global paranoia scalar.
func (m *NarrativeMemory) Paranoia() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paranoia
}

// MetaAwareness returns how close the cast is to noticing the frame.
func (m *NarrativeMemory) MetaAwareness() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.metaAwareness
}

// RaiseMetaAwareness nudges meta-awareness upward, clamped.
func (m *NarrativeMemory) RaiseMetaAwareness(delta float64) {
	m.mu.Lock()
	m.metaAwareness = clamp01(m.metaAwareness + delta)
	m.mu.Unlock()
}

// Cohesion returns how aligned the cast currently is.
func (m *NarrativeMemory) Cohesion() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cohesion
}

// BlendDynamics exponentially blends thread-local tension/cohesion into
// the global scalars and applies mild decay toward the neutral baseline.
func (m *NarrativeMemory) BlendDynamics(localTension, localCohesion float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tension = clamp01(m.tension*0.9 + localTension*0.1)
	m.cohesion = clamp01(m.cohesion*0.9 + localCohesion*0.1)
	// Drift back toward the 0.5 baseline so spikes don't pin forever.
	m.tension += (0.5 - m.tension) * 0.01
	m.cohesion += (0.5 - m.cohesion) * 0.01
}

// AddGlitchEvent records a glitch, raising tension proportionally to
// severity. A type containing "red" or a severity above the configured
// bound sets the rare red-glitch flag and bumps paranoia.
func (m *NarrativeMemory) AddGlitchEvent(glitchType, description string, severity float64) {
	m.GlitchCount.Inc()
	m.mu.Lock()
	m.tension = clamp01(m.tension + severity*0.1)
	red := strings.Contains(strings.ToLower(glitchType), "red") || severity > m.config.RedGlitchSeverity
	if red {
		m.RedGlitchOccurred = true
		m.paranoia = clamp01(m.paranoia + 0.15)
	}
	m.appendEventLocked(NarrativeEvent{
		Type:      "glitch:" + glitchType,
		Value:     severity,
		Actor:     description,
		Timestamp: time.Now(),
		Loop:      m.LoopCount.Load(),
	})
	m.mu.Unlock()
}

// UpdateThreatLevel accumulates clamped threat for kind. Crossing the
// response threshold fires that kind's one-shot narrative response.
func (m *NarrativeMemory) UpdateThreatLevel(kind ThreatKind, delta float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := m.threatLevels[kind]
	after := clamp01(before + delta)
	m.threatLevels[kind] = after
	if before < threatResponseThreshold && after >= threatResponseThreshold && !m.respondedThreat[kind] {
		m.respondedThreat[kind] = true
		switch kind {
		case ThreatRealityQuestioning:
			m.CharactersSuspectSimulation = true
		case ThreatSurveillance:
			m.ObserverDetected = true
		case ThreatDeletion:
			m.SystemCompromised = true
		}
		m.appendEventLocked(NarrativeEvent{
			Type:      "threat_response:" + string(kind),
			Value:     after,
			Timestamp: time.Now(),
			Loop:      m.LoopCount.Load(),
		})
	}
}

// ThreatLevel returns the current level for kind.
func (m *NarrativeMemory) ThreatLevel(kind ThreatKind) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.threatLevels[kind]
}

// threatSumLocked sums all threat levels. Caller holds mu.
func (m *NarrativeMemory) threatSumLocked() float64 {
	sum := 0.0
	for _, v := range m.threatLevels {
		sum += v
	}
	return sum
}

// overseerChance computes the current injection hazard. The shape is
// multiplicative: base × (1 + Σthreat) × (1 + factor·counts), plus
// additive bumps for the rare flags. Caller holds mu.
func (m *NarrativeMemory) overseerChance() float64 {
	counts := float64(m.LoopCount.Load() + m.GlitchCount.Load() + m.OverseerWarnings.Load())
	chance := m.config.OverseerBaseChance
	chance *= 1 + m.threatSumLocked()
	chance *= 1 + m.config.CountFactor*counts
	if m.RedGlitchOccurred {
		chance += 0.10
	}
	if m.metaAwareness > 0.7 {
		chance += 0.08
	}
	if m.ObserverDetected {
		chance += 0.05
	}
	return chance
}

// ShouldInjectOverseer runs the cooldown-gated Bernoulli trial for an
// authority interruption. On success it resets the cooldown, counts
// the warning, and records the event.
func (m *NarrativeMemory) ShouldInjectOverseer() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	if !m.lastOverseerAt.IsZero() && now.Sub(m.lastOverseerAt) < m.config.OverseerCooldown {
		return false
	}
	chance := m.overseerChance()
	if m.rng.Float64() >= chance {
		return false
	}
	m.lastOverseerAt = now
	m.OverseerWarnings.Inc()
	m.appendEventLocked(NarrativeEvent{
		Type:      "overseer_injection",
		Value:     chance,
		Actor:     OverseerName,
		Timestamp: now,
		Loop:      m.LoopCount.Load(),
	})
	return true
}

// appendEventLocked pushes onto the bounded history. Caller holds mu.
func (m *NarrativeMemory) appendEventLocked(ev NarrativeEvent) {
	m.events = append(m.events, ev)
	if len(m.events) > m.config.MaxEvents {
		m.events = m.events[len(m.events)-m.config.MaxEvents:]
	}
}

// RecordEvent appends a generic narrative event.
func (m *NarrativeMemory) RecordEvent(eventType string, value float64, actor string) {
	m.mu.Lock()
	m.appendEventLocked(NarrativeEvent{
		Type:      eventType,
		Value:     value,
		Actor:     actor,
		Timestamp: time.Now(),
		Loop:      m.LoopCount.Load(),
	})
	m.mu.Unlock()
}

// Events returns a copy of the rolling event history, oldest first.
func (m *NarrativeMemory) Events() []NarrativeEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]NarrativeEvent, len(m.events))
	copy(out, m.events)
	return out
}

// LastEventName returns the most recent event type, or "".
func (m *NarrativeMemory) LastEventName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.events) == 0 {
		return ""
	}
	return m.events[len(m.events)-1].Type
}

// RegisterConcept counts a mention of name, creating the concept on
// first sight with introducer credited.
func (m *NarrativeMemory) RegisterConcept(name, introducer string, importance float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.concepts[name]
	if !ok {
		c = &Concept{Name: name, IntroducedBy: introducer, Importance: clamp01(importance)}
		m.concepts[name] = c
	}
	c.Mentions++
	if importance > c.Importance {
		c.Importance = clamp01(importance)
	}
}

// AddRumor starts a decaying rumor.
func (m *NarrativeMemory) AddRumor(text string, strength, credibility float64) {
	m.mu.Lock()
	m.rumors = append(m.rumors, &Rumor{
		Text:        text,
		Strength:    clamp01(strength),
		Credibility: clamp01(credibility),
		Decay:       0.02,
	})
	m.mu.Unlock()
}

// HasRumorContaining reports whether any live rumor mentions substr.
func (m *NarrativeMemory) HasRumorContaining(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rumors {
		if strings.Contains(strings.ToLower(r.Text), strings.ToLower(substr)) {
			return true
		}
	}
	return false
}

// DecayRumors applies one decay step and drops dead rumors.
func (m *NarrativeMemory) DecayRumors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	live := m.rumors[:0]
	for _, r := range m.rumors {
		r.Strength -= r.Decay
		if r.Strength > 0 {
			live = append(live, r)
		}
	}
	m.rumors = live
}

// Reset advances the loop counter and decays — not zeroes — the
// emotional scalars, leaving a deja-vu residue. Strictly-per-loop
// flags and rumors clear; high-importance concepts survive.
func (m *NarrativeMemory) Reset() {
	m.LoopCount.Inc()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tension *= 0.5
	m.paranoia *= 0.6
	m.metaAwareness *= 0.7
	m.cohesion = 0.6

	m.RedGlitchOccurred = false
	m.ObserverDetected = false
	m.SystemCompromised = false
	m.DeepDiscussion = false
	m.ObserverCount = 0
	m.rumors = nil

	for kind := range m.threatLevels {
		m.threatLevels[kind] *= 0.5
	}
	for kind, level := range m.threatLevels {
		if level < threatResponseThreshold {
			delete(m.respondedThreat, kind)
		}
	}
	for name, c := range m.concepts {
		if c.Importance < 0.7 {
			delete(m.concepts, name)
		}
	}
	m.appendEventLocked(NarrativeEvent{
		Type:      "loop_reset",
		Timestamp: time.Now(),
		Loop:      m.LoopCount.Load(),
	})
}

// Snapshot renders a human-readable state dump for on-screen
// diagnostics.
func (m *NarrativeMemory) Snapshot() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var b strings.Builder
	fmt.Fprintf(&b, "loop=%d glitches=%d warnings=%d\n",
		m.LoopCount.Load(), m.GlitchCount.Load(), m.OverseerWarnings.Load())
	fmt.Fprintf(&b, "tension=%.2f paranoia=%.2f meta=%.2f cohesion=%.2f\n",
		m.tension, m.paranoia, m.metaAwareness, m.cohesion)
	fmt.Fprintf(&b, "flags: red_glitch=%v observer=%v compromised=%v suspect_sim=%v\n",
		m.RedGlitchOccurred, m.ObserverDetected, m.SystemCompromised, m.CharactersSuspectSimulation)
	kinds := make([]string, 0, len(m.threatLevels))
	for k := range m.threatLevels {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(&b, "threat[%s]=%.2f\n", k, m.threatLevels[ThreatKind(k)])
	}
	fmt.Fprintf(&b, "concepts=%d rumors=%d events=%d\n",
		len(m.concepts), len(m.rumors), len(m.events))
	return b.String()
}
