package narrativesdk

// ──────────────────────────────────────────────
// Template Pools — hand-authored line fragments
// ──────────────────────────────────────────────

// Intent is the rhetorical purpose of a generated line.
type Intent string

const (
	IntentStatement   Intent = "statement"
	IntentQuestion    Intent = "question"
	IntentTheory      Intent = "theory"
	IntentChallenge   Intent = "challenge"
	IntentAgreement   Intent = "agreement"
	IntentFear        Intent = "fear"
	IntentObservation Intent = "observation"
	IntentMeta        Intent = "meta"
	IntentReply       Intent = "reply" // generic fallback pool
)

// QuestionLike reports whether the intent reads as interrogative; the
// repetition guard caps runs of these.
func (i Intent) QuestionLike() bool {
	return i == IntentQuestion || i == IntentChallenge
}

// sharedTemplates are available to every persona, keyed by intent.
// Tokens: {topic} {from} {event} {related}.
var sharedTemplates = map[Intent][]string{
	IntentStatement: {
		"i keep coming back to {topic}. it doesn't add up",
		"something changed about {topic} since {event}",
		"for the record: {topic} was different yesterday",
		"{topic} again. third time this week",
		"i wrote down everything i know about {topic}. the file is shorter now",
	},
	IntentQuestion: {
		"has anyone else noticed {topic} acting strange since {event}?",
		"{from}, where did you first hear about {topic}?",
		"what if {topic} and {related} are the same thing?",
		"who started the {topic} thread in the first place?",
	},
	IntentTheory: {
		"theory: {topic} is a cover for {related}. the timestamps line up",
		"what if {event} was a test run for {topic}",
		"i think {topic} only shows up when nobody is logging. that's not random",
		"hear me out. {topic} and {related} share the same signature",
		"the gaps in {topic} are the message. not the content. the gaps",
	},
	IntentChallenge: {
		"{from}, you have zero proof that {topic} is real",
		"that's not what the logs say about {topic}",
		"convenient that {event} happened right when you brought up {topic}",
		"i checked. {topic} traces back to nothing. you're pattern-matching noise",
	},
	IntentAgreement: {
		"yeah. {from} is right about {topic}",
		"i saw it too. {topic}, exactly like {from} said",
		"that matches what i have on {related}",
	},
	IntentFear: {
		"i don't want to talk about {topic} anymore. not after {event}",
		"they flag anyone who mentions {topic}. please stop",
		"my screen flickered when i typed {topic}. i'm not joking",
		"every time we discuss {topic} something gets deleted",
	},
	IntentObservation: {
		"timestamp check: {topic} last moved at 3:33. again",
		"the {topic} entries are being edited. small changes. verbs mostly",
		"{related} went quiet the moment {topic} heated up. noted",
		"observation: {event} correlates with {topic}. n=4 now",
	},
	IntentMeta: {
		"does anyone else feel like we've had this exact conversation about {topic}",
		"if we're being watched, {topic} is what they're watching for",
		"say {topic} five times and see if the room changes",
		"we are four names in a window talking about {topic}. think about that",
	},
	IntentReply: {
		"noted. keeping an eye on {topic}",
		"hm. {topic}. let me dig",
		"adding {topic} to the board",
	},
}

// personaTemplates override the shared pool per persona and intent.
var personaTemplates = map[string]map[Intent][]string{
	CastNameLead: {
		IntentTheory: {
			"it loops. {topic} feeds {related} feeds {topic}. a closed circuit",
			"map {event} against {topic} and the pattern is right there",
			"{topic} isn't the anomaly. it's the index of the anomaly",
		},
		IntentObservation: {
			"pinned {topic} to the board next to {related}. the strings cross twice",
		},
	},
	CastNameAnxious: {
		IntentFear: {
			"please. {topic} is how it started last time. before {event}",
			"i deleted my notes on {topic} and they came back",
			"{from} don't say {topic} out loud. typing it is bad enough",
		},
		IntentStatement: {
			"i barely slept. kept thinking about {topic}",
		},
	},
	CastNameSkeptic: {
		IntentChallenge: {
			"source, {from}. an actual source for {topic}, not a feeling",
			"i ran {topic} against the archive. nothing. explain that",
		},
		IntentObservation: {
			"for completeness: {event} has a mundane explanation. {topic} might not",
		},
	},
	CastNamePlayful: {
		IntentMeta: {
			"plot twist: {topic} is the screensaver. we're the screensaver",
			"rate the render quality of {event}. i give it a 6",
			"if {topic} is real then whoever's watching owes us rent",
		},
		IntentQuestion: {
			"ok but genuinely, {from}: does {topic} scare you or excite you?",
		},
	},
}

// fallbackLines are used when template rendering fails outright.
var fallbackLines = map[string][]string{
	CastNameLead:    {"give me a second. re-checking the board", "the pattern holds. more later"},
	CastNameAnxious: {"i need a minute", "can we change the subject"},
	CastNameSkeptic: {"unverified. moving on", "i'll come back with data"},
	CastNamePlayful: {"brb, reality buffering", "lag spike. classic"},
}

// genericFallbackLine covers personas outside the stock cast.
const genericFallbackLine = "..."

// overseerTemplates are the authority interruption lines. {topic} is
// the active thread's subject when available.
var overseerTemplates = []string{
	"THIS CHANNEL IS MONITORED. DISCONTINUE DISCUSSION OF {topic}.",
	"CONTENT ADVISORY: {topic} IS NOT AN APPROVED SUBJECT.",
	"PARTICIPANTS ARE REMINDED THAT LOGS ARE RETAINED.",
	"DISCUSSION OF {topic} HAS BEEN NOTED. THIS IS WARNING {count}.",
	"RESUME NORMAL ACTIVITY.",
}

// theoryVocab and scaredVocab drive trait-affinity weighting in the
// reply lottery.
var theoryVocab = []string{"theory", "pattern", "signature", "correlates", "index", "circuit", "timestamps"}
var scaredVocab = []string{"deleted", "flag", "stop", "scared", "please", "watching", "bad"}

// tokenDefaults fill substitution tokens when context is absent.
var tokenDefaults = map[string]string{
	"{topic}":   "the thing",
	"{from}":    "someone",
	"{event}":   "last night",
	"{related}": "the other thing",
}
