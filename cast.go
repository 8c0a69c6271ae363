package narrativesdk

// ──────────────────────────────────────────────
// Default Cast — the fixed conspiracy-board personas
// ──────────────────────────────────────────────

// CastNameLead and friends are the reserved names the director's
// participant-selection rules key off.
const (
	CastNameLead    = "Orion"  // theorist, drives most threads
	CastNameAnxious = "Vesper" // spirals under overseer pressure
	CastNameSkeptic = "Quill"  // challenges everything
	CastNamePlayful = "Maeve"  // meta jokes, keeps threads light
)

// OverseerName is the reserved speaker for authority interruptions.
// It is never part of the cast map.
const OverseerName = "OVERSEER"

// DefaultCast returns the four stock personas. Callers may build their
// own cast instead; the director only requires that the lead name exist.
func DefaultCast() map[string]*Persona {
	orion := NewPersona(CastNameLead, Traits{
		Openness:          0.9,
		Conscientiousness: 0.6,
		Extraversion:      0.7,
		Agreeableness:     0.6,
		Neuroticism:       0.3,
	})
	orion.Curiosity = 0.85
	orion.Playfulness = 0.5
	orion.CatchPhrases = []string{"connect the dots.", "it all loops back."}
	orion.HesitationPhrase = []string{"wait...", "hold on—"}
	orion.KeywordBonus = map[string]float64{"pattern": 1.4, "loop": 1.3, "signal": 1.2}
	orion.PreferredIntents = []Intent{IntentTheory, IntentObservation, IntentStatement}
	orion.SpeakerBias = 1.3
	orion.Typing = TypingStyle{SpeedMultiplier: 1.15, TypoRate: 0.03, HesitationRate: 0.05}

	vesper := NewPersona(CastNameAnxious, Traits{
		Openness:          0.5,
		Conscientiousness: 0.4,
		Extraversion:      0.3,
		Agreeableness:     0.7,
		Neuroticism:       0.85,
	})
	vesper.Fear = 0.4
	vesper.Paranoia = 0.5
	vesper.Suspicion = 0.5
	vesper.CatchPhrases = []string{"i don't like this.", "we should stop."}
	vesper.HesitationPhrase = []string{"um.", "i...", "okay but"}
	vesper.KeywordBonus = map[string]float64{"watching": 1.5, "deleted": 1.4, "scared": 1.3}
	vesper.PreferredIntents = []Intent{IntentFear, IntentStatement}
	vesper.SpeakerBias = 0.9
	vesper.Typing = TypingStyle{SpeedMultiplier: 0.8, TypoRate: 0.06, HesitationRate: 0.3}
	vesper.Phobias = []string{"room 9", "the blackout"}

	quill := NewPersona(CastNameSkeptic, Traits{
		Openness:          0.6,
		Conscientiousness: 0.8,
		Extraversion:      0.5,
		Agreeableness:     0.25,
		Neuroticism:       0.35,
	})
	quill.Suspicion = 0.45
	quill.Curiosity = 0.6
	quill.CatchPhrases = []string{"citation needed.", "prove it."}
	quill.HesitationPhrase = []string{"hm.", "look,"}
	quill.KeywordBonus = map[string]float64{"evidence": 1.5, "logs": 1.3, "verify": 1.3}
	quill.PreferredIntents = []Intent{IntentChallenge, IntentObservation}
	quill.SpeakerBias = 1.0
	quill.Typing = TypingStyle{SpeedMultiplier: 0.95, TypoRate: 0.01, HesitationRate: 0.08}

	maeve := NewPersona(CastNamePlayful, Traits{
		Openness:          0.75,
		Conscientiousness: 0.3,
		Extraversion:      0.8,
		Agreeableness:     0.6,
		Neuroticism:       0.4,
	})
	maeve.Playfulness = 0.85
	maeve.Curiosity = 0.7
	maeve.CatchPhrases = []string{"anyway, we're all pixels.", "lol okay."}
	maeve.HesitationPhrase = []string{"ngl,", "ok so"}
	maeve.KeywordBonus = map[string]float64{"simulation": 1.5, "glitch": 1.3, "render": 1.2}
	maeve.PreferredIntents = []Intent{IntentMeta, IntentQuestion, IntentStatement}
	maeve.SpeakerBias = 1.1
	maeve.Typing = TypingStyle{SpeedMultiplier: 1.3, TypoRate: 0.08, HesitationRate: 0.04}

	return map[string]*Persona{
		orion.Name:  orion,
		vesper.Name: vesper,
		quill.Name:  quill,
		maeve.Name:  maeve,
	}
}
