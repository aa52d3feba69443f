package normalize

import (
	"regexp"
	"strings"

	"github.com/fanbe-group/leads-cli/internal/model"
)

var separatorRe = regexp.MustCompile(`[-_\s]+`)

// Collapse lower-cases a categorical value and folds runs of separators
// (hyphens, underscores, whitespace) into single underscores, so
// "Follow Up", "follow-up", and "FOLLOW_UP" all compare equal.
func Collapse(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	return strings.Trim(separatorRe.ReplaceAllString(s, "_"), "_")
}

// callStatusMatcher maps a collapsed-input predicate to its canonical
// status. Evaluated in order; first match wins.
type callStatusMatcher struct {
	match  func(string) bool
	status model.CallStatus
}

var callStatusMatchers = []callStatusMatcher{
	{func(s string) bool { return strings.Contains(s, "connect") }, model.CallConnected},
	{func(s string) bool {
		return strings.Contains(s, "not_answer") || strings.Contains(s, "no_answer")
	}, model.CallNotAnswered},
	{func(s string) bool { return strings.Contains(s, "call_back") }, model.CallBackLater},
	{func(s string) bool { return strings.Contains(s, "busy") }, model.CallBusy},
	{func(s string) bool {
		return strings.Contains(s, "switch") && strings.Contains(s, "off")
	}, model.CallSwitchedOff},
}

// CallStatus maps free-form call outcomes ("Connected", "no answer",
// "Call-Back requested") onto the canonical vocabulary by substring match.
// Unrecognized values pass through collapsed but unchanged; vocabulary
// enforcement is the validator's job.
func CallStatus(raw string) string {
	s := Collapse(raw)
	if s == "" {
		return ""
	}
	for _, m := range callStatusMatchers {
		if m.match(s) {
			return string(m.status)
		}
	}
	return s
}

// KnownCallStatus reports whether a normalized value is, or fuzzily
// contains, one of the canonical call statuses.
func KnownCallStatus(normalized string) bool {
	for _, known := range model.KnownCallStatuses {
		if strings.Contains(normalized, string(known)) {
			return true
		}
	}
	return false
}
