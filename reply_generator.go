package narrativesdk

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// ──────────────────────────────────────────────
// Reply Generator — intent + template selection, anti-repetition
// ──────────────────────────────────────────────

// ErrRepetitionExhausted means every retry produced a near-duplicate
// line. The director reacts by marking the thread stale.
var ErrRepetitionExhausted = errors.New("narrativesdk: reply retries exhausted by repetition filter")

// ReplyContext carries the ambient substitution context for one line.
type ReplyContext struct {
	Topic   *Topic
	Thread  *ConversationThread
	From    string // last speaker, feeds {from}
	Event   string // recent notable event name, feeds {event}
	Related *Topic // optional, feeds {related}
}

// ReplyGeneratorConfig tunes selection and flavoring.
type ReplyGeneratorConfig struct {
	MaxRetries        int     // near-duplicate redraws, default 5
	HesitationScale   float64 // hesitation chance = neuroticism × this
	CatchPhraseChance float64 // flat chance to append a catch-phrase
	Seed              int64   // 0 = time-based
}

// DefaultReplyGeneratorConfig returns the stock tuning.
func DefaultReplyGeneratorConfig() ReplyGeneratorConfig {
	return ReplyGeneratorConfig{
		MaxRetries:        5,
		HesitationScale:   0.25,
		CatchPhraseChance: 0.08,
	}
}

// ReplyGenerator renders persona-flavored lines from the template
// pools with anti-repetition filtering and a weighted lottery.
type ReplyGenerator struct {
	config ReplyGeneratorConfig
	guard  *RepetitionGuard
	rng    *rand.Rand
	rngMu  sync.Mutex
}

// NewReplyGenerator creates a generator sharing the given guard.
func NewReplyGenerator(guard *RepetitionGuard, config ...ReplyGeneratorConfig) *ReplyGenerator {
	cfg := DefaultReplyGeneratorConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if guard == nil {
		guard = NewRepetitionGuard()
	}
	return &ReplyGenerator{
		config: cfg,
		guard:  guard,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Generate produces one rendered line for persona with the requested
// intent. The returned intent may differ when the interrogative-run
// guard forces a substitution.
func (g *ReplyGenerator) Generate(persona *Persona, intent Intent, ctx ReplyContext) (string, Intent, error) {
	if persona == nil {
		return "", intent, errors.New("narrativesdk: nil persona")
	}

	// Interrogative-loop guard: two question-like intents in a row is
	// enough, swap in a persona-preferred alternative.
	if g.guard.QuestionRunExceeded(intent) {
		intent = g.alternativeIntent(persona)
	}

	pool := g.resolvePool(persona, intent)
	rendered := make([]string, 0, len(pool))
	for _, tmpl := range pool {
		rendered = append(rendered, renderTemplate(tmpl, ctx))
	}

	// Drop near-duplicates of the recent window and of the thread's
	// own history; fall back to the unfiltered pool when nothing
	// survives.
	isDup := func(line string) bool {
		return g.guard.IsNearDuplicate(line) || threadEcho(ctx.Thread, line, g.guard.config.OverlapThreshold)
	}
	fresh := rendered[:0:0]
	for _, line := range rendered {
		if !isDup(line) {
			fresh = append(fresh, line)
		}
	}
	if len(fresh) == 0 {
		fresh = rendered
	}

	weights := g.weigh(persona, fresh)
	var line string
	for attempt := 0; ; attempt++ {
		line = fresh[g.lottery(weights)]
		if !isDup(line) {
			break
		}
		if attempt >= g.config.MaxRetries {
			return "", intent, ErrRepetitionExhausted
		}
	}

	line = g.flavor(persona, line)
	g.guard.RecordLine(line)
	g.guard.RecordIntent(intent)
	return line, intent, nil
}

// FallbackLine returns a safe per-persona line for when generation
// fails outright.
func (g *ReplyGenerator) FallbackLine(persona *Persona) string {
	lines, ok := fallbackLines[persona.Name]
	if !ok || len(lines) == 0 {
		return genericFallbackLine
	}
	g.rngMu.Lock()
	defer g.rngMu.Unlock()
	return lines[g.rng.Intn(len(lines))]
}

// resolvePool walks persona pool → shared pool → generic reply pool.
func (g *ReplyGenerator) resolvePool(persona *Persona, intent Intent) []string {
	if perPersona, ok := personaTemplates[persona.Name]; ok {
		if pool, ok := perPersona[intent]; ok && len(pool) > 0 {
			// Persona pools extend rather than replace the shared pool.
			return append(append([]string{}, pool...), sharedTemplates[intent]...)
		}
	}
	if pool, ok := sharedTemplates[intent]; ok && len(pool) > 0 {
		return pool
	}
	return sharedTemplates[IntentReply]
}

// alternativeIntent picks the persona's first non-interrogative
// preference, defaulting to a plain statement.
func (g *ReplyGenerator) alternativeIntent(persona *Persona) Intent {
	for _, pref := range persona.PreferredIntents {
		if !pref.QuestionLike() {
			return pref
		}
	}
	return IntentStatement
}

// weigh computes the per-candidate lottery weights: 1.0 multiplied by
// trait-vocabulary affinities and persona keyword bonuses.
func (g *ReplyGenerator) weigh(persona *Persona, lines []string) []float64 {
	weights := make([]float64, len(lines))
	for i, line := range lines {
		lower := strings.ToLower(line)
		w := 1.0
		if persona.Traits.Openness > 0.6 && containsAny(lower, theoryVocab) {
			w *= 1 + 0.5*persona.Traits.Openness
		}
		if persona.Traits.Neuroticism > 0.6 && containsAny(lower, scaredVocab) {
			w *= 1 + 0.5*persona.Traits.Neuroticism
		}
		for keyword, bonus := range persona.KeywordBonus {
			if strings.Contains(lower, keyword) {
				w *= bonus
			}
		}
		weights[i] = w
	}
	return weights
}

// lottery performs a cumulative-weight draw and returns the index.
func (g *ReplyGenerator) lottery(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}
	g.rngMu.Lock()
	roll := g.rng.Float64() * total
	g.rngMu.Unlock()
	cum := 0.0
	for i, w := range weights {
		cum += w
		if roll < cum {
			return i
		}
	}
	return len(weights) - 1
}

// flavor optionally prepends a hesitation phrase or appends a
// catch-phrase.
func (g *ReplyGenerator) flavor(persona *Persona, line string) string {
	g.rngMu.Lock()
	hesitate := len(persona.HesitationPhrase) > 0 &&
		g.rng.Float64() < persona.Traits.Neuroticism*g.config.HesitationScale
	catchphrase := len(persona.CatchPhrases) > 0 &&
		g.rng.Float64() < g.config.CatchPhraseChance
	hi := 0
	ci := 0
	if len(persona.HesitationPhrase) > 0 {
		hi = g.rng.Intn(len(persona.HesitationPhrase))
	}
	if len(persona.CatchPhrases) > 0 {
		ci = g.rng.Intn(len(persona.CatchPhrases))
	}
	g.rngMu.Unlock()

	if hesitate {
		line = persona.HesitationPhrase[hi] + " " + line
	}
	if catchphrase {
		line = line + " " + persona.CatchPhrases[ci]
	}
	return line
}

// renderTemplate substitutes the four context tokens, using generic
// fillers when context is absent.
func renderTemplate(tmpl string, ctx ReplyContext) string {
	topic := tokenDefaults["{topic}"]
	if ctx.Topic != nil {
		topic = ctx.Topic.Display
	}
	from := ctx.From
	if from == "" {
		from = tokenDefaults["{from}"]
	}
	event := ctx.Event
	if event == "" {
		event = tokenDefaults["{event}"]
	}
	related := tokenDefaults["{related}"]
	if ctx.Related != nil {
		related = ctx.Related.Display
	}
	return strings.NewReplacer(
		"{topic}", topic,
		"{from}", from,
		"{event}", event,
		"{related}", related,
	).Replace(tmpl)
}

// threadEcho reports whether line heavily overlaps anything in the
// thread's recent history. User contributions land in the thread but
// not in the shared repetition window, so this catch is separate.
func threadEcho(t *ConversationThread, line string, threshold float64) bool {
	if t == nil || threshold <= 0 {
		return false
	}
	words := bagOfWords(line)
	hist := t.History()
	start := 0
	if len(hist) > 6 {
		start = len(hist) - 6
	}
	for _, prev := range hist[start:] {
		if overlapRatio(words, bagOfWords(prev)) > threshold {
			return true
		}
	}
	return false
}

func containsAny(line string, vocab []string) bool {
	for _, word := range vocab {
		if strings.Contains(line, word) {
			return true
		}
	}
	return false
}
