package mirror

import (
	"regexp"
	"strings"
)

// directivePattern matches the instructive phrases the daily prompt forbids.
// Word-boundary anchored so e.g. "trying" and "considerable" survive.
var directivePattern = regexp.MustCompile(`(?i)\b(should|try|consider|next time|need to)\b`)

// StripDirectives removes directive language from generated text. This is a
// textual guardrail against the model ignoring the prompt's style
// constraints, not a semantic guarantee.
func StripDirectives(text string) string {
	return strings.TrimSpace(directivePattern.ReplaceAllString(text, ""))
}
