package narrativesdk

import (
	"strings"
	"time"
)

// ──────────────────────────────────────────────
// Persona Model — traits, mood cascade, relationships
// ──────────────────────────────────────────────

// Mood is a persona's discrete emotional state, recomputed from
// traits plus dynamic state after every interaction.
type Mood string

const (
	MoodNeutral    Mood = "neutral"
	MoodParanoid   Mood = "paranoid"
	MoodScared     Mood = "scared"
	MoodSuspicious Mood = "suspicious"
	MoodCurious    Mood = "curious"
	MoodInspired   Mood = "inspired"
	MoodPlayful    Mood = "playful"
	MoodAgitated   Mood = "agitated"
)

// Traits is the five-factor personality vector. All values 0.0-1.0,
// fixed at cast creation.
type Traits struct {
	Openness          float64 `json:"openness"`
	Conscientiousness float64 `json:"conscientiousness"`
	Extraversion      float64 `json:"extraversion"`
	Agreeableness     float64 `json:"agreeableness"`
	Neuroticism       float64 `json:"neuroticism"`
}

// TypingStyle holds timing hints for the presentation layer.
// The engine never sleeps on these itself.
type TypingStyle struct {
	SpeedMultiplier float64 `json:"speed_multiplier"` // 1.0 = baseline
	TypoRate        float64 `json:"typo_rate"`
	HesitationRate  float64 `json:"hesitation_rate"`
}

// Relationship tracks one persona's evolving view of another.
// All scalars 0.0-1.0.
type Relationship struct {
	Trust         float64  `json:"trust"`
	Respect       float64  `json:"respect"`
	Intimacy      float64  `json:"intimacy"`
	Tension       float64  `json:"tension"`
	EmotionalBond float64  `json:"emotional_bond"`
	Interactions  int      `json:"interactions"`
	SharedMemory  []string `json:"shared_memory,omitempty"`
	Conflicts     []string `json:"conflicts,omitempty"`
	SupportEvents []string `json:"support_events,omitempty"`
}

// InteractionKind classifies a single exchange for relationship updates.
type InteractionKind string

const (
	InteractionConversation InteractionKind = "conversation"
	InteractionDisagreement InteractionKind = "disagreement"
	InteractionSupport      InteractionKind = "support"
	InteractionSharedInfo   InteractionKind = "shared_information"
)

// Persona is one autonomous cast member. Created once at engine start
// and mutated continuously; never destroyed while the process runs.
type Persona struct {
	Name   string `json:"name"`
	Traits Traits `json:"traits"`

	// Dynamic mood-adjacent scalars, all 0.0-1.0.
	Curiosity   float64 `json:"curiosity"`
	Suspicion   float64 `json:"suspicion"`
	Paranoia    float64 `json:"paranoia"`
	Fear        float64 `json:"fear"`
	Playfulness float64 `json:"playfulness"`

	Mood   Mood        `json:"mood"`
	Typing TypingStyle `json:"typing"`

	// Authored flavor used by the reply generator.
	CatchPhrases     []string           `json:"catch_phrases,omitempty"`
	HesitationPhrase []string           `json:"hesitation_phrases,omitempty"`
	KeywordBonus     map[string]float64 `json:"keyword_bonus,omitempty"`
	PreferredIntents []Intent           `json:"preferred_intents,omitempty"`
	Phobias          []string           `json:"phobias,omitempty"`

	// SpeakerBias multiplies this persona's weight in the speaker lottery.
	SpeakerBias float64 `json:"speaker_bias"`

	relationships map[string]*Relationship
	lastSpokeAt   time.Time
}

// NewPersona creates a persona with neutral dynamic state.
func NewPersona(name string, traits Traits) *Persona {
	return &Persona{
		Name:        name,
		Traits:      traits,
		Curiosity:   0.5,
		Suspicion:   0.2,
		Paranoia:    0.2,
		Fear:        0.1,
		Playfulness: 0.4,
		Mood:        MoodNeutral,
		Typing:      TypingStyle{SpeedMultiplier: 1.0, TypoRate: 0.02, HesitationRate: 0.1},
		SpeakerBias: 1.0,
	}
}

// moodRule is one step of the ordered mood cascade. Order is
// significant: the first matching rule wins.
type moodRule struct {
	match func(*Persona) bool
	mood  Mood
}

var moodCascade = []moodRule{
	{func(p *Persona) bool {
		stress := p.Traits.Neuroticism*p.Paranoia + p.Fear*0.5
		return stress > 0.7
	}, MoodParanoid},
	{func(p *Persona) bool {
		return p.Fear > 0.5 && p.Traits.Neuroticism > 0.6
	}, MoodScared},
	{func(p *Persona) bool {
		return p.Suspicion > 0.7
	}, MoodSuspicious},
	{func(p *Persona) bool {
		return p.Traits.Openness*p.Curiosity > 0.7
	}, MoodCurious},
	{func(p *Persona) bool {
		return p.Traits.Openness > 0.7 && p.Playfulness > 0.6
	}, MoodInspired},
	{func(p *Persona) bool {
		return p.Playfulness > 0.7 && p.Traits.Extraversion > 0.5
	}, MoodPlayful},
	{func(p *Persona) bool {
		return p.Traits.Agreeableness < 0.3 && p.Suspicion > 0.4
	}, MoodAgitated},
}

// UpdateMood recomputes the discrete mood from the rule cascade.
// Falls through to MoodNeutral when nothing matches.
func (p *Persona) UpdateMood() Mood {
	for _, rule := range moodCascade {
		if rule.match(p) {
			p.Mood = rule.mood
			return p.Mood
		}
	}
	p.Mood = MoodNeutral
	return p.Mood
}

// Relationship returns the live record toward other, creating a
// neutral one on first contact.
func (p *Persona) Relationship(other string) *Relationship {
	if p.relationships == nil {
		p.relationships = make(map[string]*Relationship)
	}
	rel, ok := p.relationships[other]
	if !ok {
		rel = &Relationship{Trust: 0.4, Respect: 0.4, Intimacy: 0.1, Tension: 0.1, EmotionalBond: 0.1}
		p.relationships[other] = rel
	}
	return rel
}

// UpdateRelationship applies kind-specific deltas toward other and
// clamps every scalar back into [0,1].
func (p *Persona) UpdateRelationship(other string, kind InteractionKind, context string) {
	rel := p.Relationship(other)
	rel.Interactions++

	switch kind {
	case InteractionConversation:
		rel.Intimacy += 0.01 * (0.5 + p.Traits.Extraversion)
		rel.Trust += 0.008 * (0.5 + p.Traits.Agreeableness)
		rel.Respect += 0.004 * (0.5 + p.Traits.Conscientiousness)
	case InteractionDisagreement:
		rel.Tension += 0.05 * (0.5 + p.Traits.Neuroticism)
		rel.Trust -= 0.02 * (0.5 + p.Traits.Neuroticism)
		if context != "" {
			rel.Conflicts = appendBounded(rel.Conflicts, context, maxRelationshipLog)
		}
	case InteractionSupport:
		rel.Trust += 0.04
		rel.EmotionalBond += 0.03
		rel.Tension -= 0.02
		if context != "" {
			rel.SupportEvents = appendBounded(rel.SupportEvents, context, maxRelationshipLog)
		}
	case InteractionSharedInfo:
		rel.Intimacy += 0.02
		if context != "" && !containsString(rel.SharedMemory, context) {
			rel.SharedMemory = appendBounded(rel.SharedMemory, context, maxRelationshipLog)
		}
	}

	rel.Trust = clamp01(rel.Trust)
	rel.Respect = clamp01(rel.Respect)
	rel.Intimacy = clamp01(rel.Intimacy)
	rel.Tension = clamp01(rel.Tension)
	rel.EmotionalBond = clamp01(rel.EmotionalBond)
}

const maxRelationshipLog = 20

// sensitiveTerms trip hesitation for high-neuroticism personas
// regardless of their personal phobia list.
var sensitiveTerms = []string{
	"deleted", "watching", "overseer", "forbidden", "erased",
	"they know", "shut down", "terminated",
}

// ShouldHesitateOnTopic reports whether the presentation layer should
// insert a hesitation pause before typing text. Timing hint only.
func (p *Persona) ShouldHesitateOnTopic(text string) bool {
	lower := strings.ToLower(text)
	if p.Traits.Neuroticism > 0.55 {
		for _, term := range sensitiveTerms {
			if strings.Contains(lower, term) {
				return true
			}
		}
	}
	for _, phobia := range p.Phobias {
		if strings.Contains(lower, strings.ToLower(phobia)) {
			return true
		}
	}
	return false
}

// TypingSpeedMultiplier composes the base speed with hesitation,
// excitement and care factors for the given line.
func (p *Persona) TypingSpeedMultiplier(text string) float64 {
	speed := p.Typing.SpeedMultiplier
	if p.ShouldHesitateOnTopic(text) {
		speed *= 0.75
	}
	if strings.Contains(text, "!") && p.Traits.Openness > 0.6 {
		speed *= 1.2
	}
	// Conscientious typists slow down and make fewer mistakes.
	speed *= 1.0 - 0.15*p.Traits.Conscientiousness
	if speed < 0.2 {
		speed = 0.2
	}
	return speed
}

// RaiseFear bumps fear and paranoia together, clamped.
func (p *Persona) RaiseFear(delta float64) {
	p.Fear = clamp01(p.Fear + delta)
	p.Paranoia = clamp01(p.Paranoia + delta*0.5)
}

// ClampState forces every dynamic scalar back into [0,1].
func (p *Persona) ClampState() {
	p.Curiosity = clamp01(p.Curiosity)
	p.Suspicion = clamp01(p.Suspicion)
	p.Paranoia = clamp01(p.Paranoia)
	p.Fear = clamp01(p.Fear)
	p.Playfulness = clamp01(p.Playfulness)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func appendBounded(list []string, item string, max int) []string {
	list = append(list, item)
	if len(list) > max {
		list = list[len(list)-max:]
	}
	return list
}

func containsString(list []string, item string) bool {
	for _, s := range list {
		if s == item {
			return true
		}
	}
	return false
}
