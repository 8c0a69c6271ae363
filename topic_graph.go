package narrativesdk

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// ──────────────────────────────────────────────
// Topic Graph — discourse subjects, relations, mutation
// ──────────────────────────────────────────────

// TopicStatus tags where a topic sits on the escalation ladder.
type TopicStatus string

const (
	TopicNeutral       TopicStatus = "neutral"
	TopicControversial TopicStatus = "controversial"
	TopicForbidden     TopicStatus = "forbidden"
	TopicSolved        TopicStatus = "solved"
	TopicMutating      TopicStatus = "mutating"
)

// Topic is a pooled discourse subject. Each core identifier maps to
// exactly one live instance; mutation happens in place.
type Topic struct {
	Core          string      `json:"core"`
	Display       string      `json:"display"` // diverges from Core once mutated
	Status        TopicStatus `json:"status"`
	Discussions   int         `json:"discussions"`
	LastDiscussed time.Time   `json:"last_discussed"`

	Believers   map[string]bool `json:"believers,omitempty"`
	Doubters    map[string]bool `json:"doubters,omitempty"`
	ForbiddenBy map[string]bool `json:"forbidden_by,omitempty"`

	IsRumor        bool `json:"is_rumor"`
	IsGlitchSource bool `json:"is_glitch_source"`
}

// seedTopics is the fixed pool of topic cores.
var seedTopics = []string{
	"loop theory", "the overseer", "signal drift", "redacted logs",
	"the broadcast", "room 9", "static bleed", "the archive",
	"mirror protocol", "numbers station", "the blackout", "deja vu",
	"the watchers", "lost frequencies", "terminal ghosts", "the pattern",
	"midnight handshake", "phantom packets", "the simulation", "cold storage",
}

// topicRelations is the hand-seeded adjacency map. Kept symmetric by
// buildRelations at init.
var topicRelations = map[string][]string{
	"loop theory":     {"deja vu", "the pattern", "the simulation"},
	"the overseer":    {"the watchers", "redacted logs", "room 9"},
	"signal drift":    {"static bleed", "lost frequencies", "the broadcast"},
	"redacted logs":   {"the archive", "cold storage"},
	"the broadcast":   {"numbers station", "midnight handshake"},
	"room 9":          {"the blackout", "cold storage"},
	"static bleed":    {"terminal ghosts", "phantom packets"},
	"mirror protocol": {"the simulation", "midnight handshake"},
	"numbers station": {"lost frequencies"},
	"the blackout":    {"terminal ghosts"},
	"deja vu":         {"the simulation"},
	"the watchers":    {"phantom packets"},
	"the pattern":     {"the archive"},
}

// mutationPrefixes produce display variants when a topic mutates.
var mutationPrefixes = []string{
	"corrupted %s", "forbidden %s", "the truth about %s",
	"%s (revised)", "inverted %s", "echoes of %s",
}

// TopicGraphConfig tunes mutation probabilities.
type TopicGraphConfig struct {
	EscalateChance     float64 // mutate() escalates to a related topic instead
	ForbiddenChance    float64
	RumorChance        float64
	GlitchSourceChance float64
	Seed               int64 // 0 = time-based
}

// DefaultTopicGraphConfig returns the stock probabilities.
func DefaultTopicGraphConfig() TopicGraphConfig {
	return TopicGraphConfig{
		EscalateChance:     0.30,
		ForbiddenChance:    0.10,
		RumorChance:        0.13,
		GlitchSourceChance: 0.08,
	}
}

// TopicGraph owns the topic pool and its relation edges. The pool is
// not guarded; the director serializes all access on its own mutex.
type TopicGraph struct {
	config    TopicGraphConfig
	pool      map[string]*Topic
	relations map[string][]string
	rng       *rand.Rand
	rngMu     sync.Mutex
}

// NewTopicGraph creates a graph over the seed pool.
func NewTopicGraph(config ...TopicGraphConfig) *TopicGraph {
	cfg := DefaultTopicGraphConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &TopicGraph{
		config:    cfg,
		pool:      make(map[string]*Topic),
		relations: buildRelations(),
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// buildRelations mirrors every edge so lookups work from both ends.
func buildRelations() map[string][]string {
	out := make(map[string][]string, len(topicRelations))
	add := func(a, b string) {
		for _, existing := range out[a] {
			if existing == b {
				return
			}
		}
		out[a] = append(out[a], b)
	}
	for from, tos := range topicRelations {
		for _, to := range tos {
			add(from, to)
			add(to, from)
		}
	}
	return out
}

// GetOrCreate returns the single live instance for core, creating it
// lazily on first reference.
func (g *TopicGraph) GetOrCreate(core string) *Topic {
	if t, ok := g.pool[core]; ok {
		return t
	}
	t := &Topic{
		Core:        core,
		Display:     core,
		Status:      TopicNeutral,
		Believers:   make(map[string]bool),
		Doubters:    make(map[string]bool),
		ForbiddenBy: make(map[string]bool),
	}
	g.pool[core] = t
	return t
}

// GetRandom picks uniformly from the seed pool.
func (g *TopicGraph) GetRandom() *Topic {
	g.rngMu.Lock()
	core := seedTopics[g.rng.Intn(len(seedTopics))]
	g.rngMu.Unlock()
	return g.GetOrCreate(core)
}

// GetRelated picks a neighbor of topic uniformly, falling back to
// GetRandom when the topic has no edges.
func (g *TopicGraph) GetRelated(topic *Topic) *Topic {
	related, ok := g.relations[topic.Core]
	if !ok || len(related) == 0 {
		return g.GetRandom()
	}
	g.rngMu.Lock()
	core := related[g.rng.Intn(len(related))]
	g.rngMu.Unlock()
	return g.GetOrCreate(core)
}

// Mutate evolves topic in place and returns the topic the conversation
// should continue on. With EscalateChance it hops to a related topic
// instead of mutating.
func (g *TopicGraph) Mutate(topic *Topic) *Topic {
	g.rngMu.Lock()
	escalate := g.rng.Float64() < g.config.EscalateChance
	prefix := mutationPrefixes[g.rng.Intn(len(mutationPrefixes))]
	flipForbidden := g.rng.Float64() < g.config.ForbiddenChance
	flipRumor := g.rng.Float64() < g.config.RumorChance
	flipGlitch := g.rng.Float64() < g.config.GlitchSourceChance
	g.rngMu.Unlock()

	if escalate {
		return g.GetRelated(topic)
	}

	if topic.Status == TopicMutating {
		topic.Status = TopicControversial
	} else {
		topic.Status = TopicMutating
	}
	topic.Display = fmt.Sprintf(prefix, topic.Core)

	if flipForbidden {
		topic.Status = TopicForbidden
	}
	if flipRumor {
		topic.IsRumor = true
	}
	if flipGlitch {
		topic.IsGlitchSource = true
	}
	return topic
}

// GetControversialOrForbidden returns an existing matching topic, or
// forcibly escalates a random one so the result is never empty.
func (g *TopicGraph) GetControversialOrForbidden() *Topic {
	for _, t := range g.pool {
		if t.Status == TopicControversial || t.Status == TopicForbidden {
			return t
		}
	}
	t := g.GetRandom()
	t.Status = TopicControversial
	return t
}

// MarkDiscussed bumps the discussion bookkeeping.
func (g *TopicGraph) MarkDiscussed(topic *Topic, speaker string) {
	topic.Discussions++
	topic.LastDiscussed = time.Now()
	if topic.Status == TopicForbidden {
		topic.ForbiddenBy[speaker] = true
	}
}
