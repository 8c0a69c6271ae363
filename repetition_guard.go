package narrativesdk

import (
	"strings"
)

// ──────────────────────────────────────────────
// Repetition Guard — near-duplicate lines and intent loops
// ──────────────────────────────────────────────

// RepetitionGuardConfig controls repetition detection behavior.
type RepetitionGuardConfig struct {
	Enabled          bool
	OverlapThreshold float64 // bag-of-words overlap ratio, default 0.7
	WindowSize       int     // recent rendered lines kept, default 12
	MaxIntentRun     int     // consecutive question-like intents allowed, default 2
	IntentWindow     int     // recent intents kept, default 8
}

// DefaultRepetitionGuardConfig returns sensible defaults.
func DefaultRepetitionGuardConfig() RepetitionGuardConfig {
	return RepetitionGuardConfig{
		Enabled:          true,
		OverlapThreshold: 0.7,
		WindowSize:       12,
		MaxIntentRun:     2,
		IntentWindow:     8,
	}
}

// RepetitionGuard tracks recently rendered lines and chosen intents.
// Lines are compared by bag-of-words overlap; intents by run length.
type RepetitionGuard struct {
	config  RepetitionGuardConfig
	lines   []string
	intents []Intent
}

// NewRepetitionGuard creates a guard with the given config.
func NewRepetitionGuard(config ...RepetitionGuardConfig) *RepetitionGuard {
	cfg := DefaultRepetitionGuardConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	return &RepetitionGuard{config: cfg}
}

// IsNearDuplicate reports whether line overlaps any recent line beyond
// the threshold.
func (g *RepetitionGuard) IsNearDuplicate(line string) bool {
	if !g.config.Enabled {
		return false
	}
	words := bagOfWords(line)
	if len(words) == 0 {
		return false
	}
	for _, recent := range g.lines {
		if overlapRatio(words, bagOfWords(recent)) > g.config.OverlapThreshold {
			return true
		}
	}
	return false
}

// RecordLine adds a rendered line to the window.
func (g *RepetitionGuard) RecordLine(line string) {
	g.lines = append(g.lines, line)
	if len(g.lines) > g.config.WindowSize {
		g.lines = g.lines[len(g.lines)-g.config.WindowSize:]
	}
}

// RecordIntent adds a chosen intent to the window.
func (g *RepetitionGuard) RecordIntent(intent Intent) {
	g.intents = append(g.intents, intent)
	if len(g.intents) > g.config.IntentWindow {
		g.intents = g.intents[len(g.intents)-g.config.IntentWindow:]
	}
}

// QuestionRunExceeded reports whether emitting another question-like
// intent would extend an interrogative run past the configured limit.
func (g *RepetitionGuard) QuestionRunExceeded(next Intent) bool {
	if !g.config.Enabled || !next.QuestionLike() {
		return false
	}
	run := 0
	for i := len(g.intents) - 1; i >= 0; i-- {
		if !g.intents[i].QuestionLike() {
			break
		}
		run++
	}
	return run >= g.config.MaxIntentRun
}

// Reset clears both windows.
func (g *RepetitionGuard) Reset() {
	g.lines = nil
	g.intents = nil
}

// bagOfWords lowercases and splits on non-letter boundaries, returning
// the word set.
func bagOfWords(line string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(line), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	set := make(map[string]bool, len(words))
	for _, w := range words {
		if len(w) > 1 {
			set[w] = true
		}
	}
	return set
}

// overlapRatio is |a ∩ b| over the smaller set size.
func overlapRatio(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	shared := 0
	for w := range small {
		if large[w] {
			shared++
		}
	}
	return float64(shared) / float64(len(small))
}
