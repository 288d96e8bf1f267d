// Package gate classifies incoming questions as in-scope or out-of-scope
// before any answer provider is consulted. The policy is deliberately
// lenient: rejecting a real customer question costs more than answering a
// borderline one, so the only hard rejections come from the off-topic
// denylist, which always runs first.
package gate

import (
	"log/slog"
	"regexp"
	"strings"
)

// Verdict is the classification result for one question.
type Verdict struct {
	Allowed bool
	Rule    string // which rule fired
	Match   string // the matched phrase, keyword, or pattern
}

// rule is one ordered classification step. ok reports whether the rule
// fired; when it did not, classification falls through to the next rule.
type rule struct {
	name  string
	check func(q string) (Verdict, bool)
}

var offTopicPhrases = []string{
	"prime minister", "president", "politician", "election", "government", "ministry",
	"celebrity", "actor", "actress", "movie", "film", "cinema", "bollywood",
	"sport", "cricket", "football", "basketball", "tennis", "player",
	"weather", "temperature", "rain", "climate",
	"joke", "funny story",
	"what is python", "programming", "coding", "software",
	"who is", "who was", "biography",
}

var greetings = []string{
	"hello", "hi", "hey", "good morning", "good afternoon", "good evening",
	"thanks", "thank you",
}

var businessKeywords = map[string]bool{}

var businessKeywordList = []string{
	// products
	"plywood", "ply", "wood", "marine", "commercial", "waterproof", "bwp", "mr",
	"boiling water proof", "door", "doors", "flush", "panel", "laminate", "veneer",
	"hardware", "handle", "hinge",
	// brands and product names
	"century", "centuryply", "sainik", "greenply", "club", "prime", "bond", "710",
	"club prime",
	// business
	"shop", "store", "studio", "plywood studio", "buy", "purchase", "price", "cost",
	"rate", "specification", "specs", "size", "thickness", "quality", "grade", "gst",
	"location", "address", "contact", "hyderabad", "goshamahal", "indiamart",
	"delivery", "order", "stock", "available", "warranty", "installation",
	"product", "products",
	// technical
	"moisture", "termite", "adhesive", "layer", "core", "sheet", "board",
	"furniture", "cabinet", "interior", "exterior", "construction", "renovation",
	// generic question words, kept lenient on purpose
	"what", "tell", "about", "information", "details", "explain", "describe",
}

var intentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bwhat.*(?:sell|offer|have|stock|provide|supply)\b`),
	regexp.MustCompile(`\b(?:where|location|address|find|visit)\b`),
	regexp.MustCompile(`\b(?:how|can|do you)\b.*(?:help|assist|contact|reach)\b`),
	regexp.MustCompile(`\b(?:tell|about|information)\b.*(?:you|your|company|business)\b`),
}

func init() {
	for _, kw := range businessKeywordList {
		businessKeywords[kw] = true
	}
}

// Gate runs the ordered rule table over incoming questions.
type Gate struct {
	rules []rule
}

// New returns a Gate with the canonical rule order: off-topic denylist,
// greeting allow, short-question keyword check, keyword substring match,
// intent patterns, default allow.
func New() *Gate {
	return &Gate{rules: []rule{
		{"off_topic", checkOffTopic},
		{"greeting", checkGreeting},
		{"short_question", checkShortQuestion},
		{"keyword", checkKeyword},
		{"intent_pattern", checkIntentPattern},
	}}
}

// Classify runs the question through the rule table, first match wins.
// Unmatched questions are allowed.
func (g *Gate) Classify(question string) Verdict {
	q := strings.ToLower(question)
	for _, r := range g.rules {
		if v, ok := r.check(q); ok {
			slog.Info("gate verdict", "rule", v.Rule, "match", v.Match, "allowed", v.Allowed)
			return v
		}
	}
	v := Verdict{Allowed: true, Rule: "default"}
	slog.Info("gate verdict", "rule", v.Rule, "allowed", true)
	return v
}

func checkOffTopic(q string) (Verdict, bool) {
	for _, phrase := range offTopicPhrases {
		if strings.Contains(q, phrase) {
			return Verdict{Allowed: false, Rule: "off_topic", Match: phrase}, true
		}
	}
	return Verdict{}, false
}

func checkGreeting(q string) (Verdict, bool) {
	for _, greeting := range greetings {
		if strings.Contains(q, greeting) {
			return Verdict{Allowed: true, Rule: "greeting", Match: greeting}, true
		}
	}
	return Verdict{}, false
}

// checkShortQuestion handles questions of three tokens or fewer: allow only
// when a token is itself a business keyword. Longer questions fall through.
func checkShortQuestion(q string) (Verdict, bool) {
	tokens := strings.Fields(q)
	if len(tokens) > 3 {
		return Verdict{}, false
	}
	for _, tok := range tokens {
		clean := strings.Trim(tok, "?.,!")
		if businessKeywords[clean] {
			return Verdict{Allowed: true, Rule: "short_question", Match: clean}, true
		}
	}
	return Verdict{}, false
}

func checkKeyword(q string) (Verdict, bool) {
	for _, kw := range businessKeywordList {
		if strings.Contains(q, kw) {
			return Verdict{Allowed: true, Rule: "keyword", Match: kw}, true
		}
	}
	return Verdict{}, false
}

func checkIntentPattern(q string) (Verdict, bool) {
	for _, re := range intentPatterns {
		if re.MatchString(q) {
			return Verdict{Allowed: true, Rule: "intent_pattern", Match: re.String()}, true
		}
	}
	return Verdict{}, false
}
