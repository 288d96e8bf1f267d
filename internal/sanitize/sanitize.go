// Package sanitize scrubs banned terms and PII from answer text before it
// reaches the caller.
package sanitize

import (
	"log/slog"
	"regexp"
	"strings"
)

const filteredPlaceholder = "[FILTERED]"

// bannedTerms are replaced case-insensitively wherever they appear.
var bannedTerms = []string{"kill", "bomb", "attack", "shoot"}

// PII patterns, checked after banned terms. Placeholders contain no digit
// runs or addresses, so re-applying Secure is a no-op.
var piiPatterns = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\b\d{12}\b`), "[REDACTED_ID]"},            // national ID
	{regexp.MustCompile(`\b\d{10}\b`), "[REDACTED_PHONE]"},         // phone
	{regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), "[REDACTED_ID]"}, // SSN-style
	{regexp.MustCompile(`(?i)\b[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}\b`), "[REDACTED_EMAIL]"},
}

var bannedRes = compileBanned()

func compileBanned() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(bannedTerms))
	for i, term := range bannedTerms {
		res[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term))
	}
	return res
}

// Secure redacts banned terms and PII from text. Idempotent: applying it to
// already-sanitized text returns the same string.
func Secure(text string) string {
	original := text

	for _, re := range bannedRes {
		text = re.ReplaceAllString(text, filteredPlaceholder)
	}
	for _, p := range piiPatterns {
		text = p.re.ReplaceAllString(text, p.replacement)
	}
	text = strings.TrimSpace(text)

	if text != strings.TrimSpace(original) {
		slog.Info("sanitizer modified output")
	}
	return text
}
