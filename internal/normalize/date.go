package normalize

import (
	"regexp"
	"strings"
	"time"
)

// isoLayouts are tried first; exports from the backoffice itself are
// already ISO-shaped.
var isoLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

var slashDateRe = regexp.MustCompile(`^(\d{1,4})[/-](\d{1,2})[/-](\d{1,4})$`)

// Date canonicalizes a date string to YYYY-MM-DD. Accepted source formats,
// in priority order: ISO (with or without a time component), DD/MM/YYYY,
// MM/DD/YYYY, YYYY/MM/DD; both "/" and "-" separate the slash-style forms.
// The first format that parses to a real calendar date wins, so "31/02/2026"
// is rejected rather than coerced. The second return is false when nothing
// matched; callers treat that as a value, not a failure of the pipeline.
func Date(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	if !slashDateRe.MatchString(s) {
		return "", false
	}
	sep := strings.ReplaceAll(s, "-", "/")
	for _, layout := range []string{"2/1/2006", "1/2/2006", "2006/1/2"} {
		if t, err := time.Parse(layout, sep); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
