package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// Name trims a lead name and folds internal whitespace runs. Names typed in
// a single case ("rahul kumar", "RAHUL KUMAR") are title-cased; mixed-case
// input is left alone to avoid mangling spellings like "McDonald".
func Name(raw string) string {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" {
		return ""
	}

	hasUpper, hasLower := false, false
	for _, r := range name {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	if hasUpper != hasLower {
		return titleCaser.String(strings.ToLower(name))
	}
	return name
}
