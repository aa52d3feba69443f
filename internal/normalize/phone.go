// Package normalize canonicalizes the heterogeneous field formats found in
// lead exports: phone numbers, dates, call statuses, and free-form names.
// All functions are pure.
package normalize

import "strings"

// Phone canonicalizes an Indian phone number to +91XXXXXXXXXX form.
//
// All non-digit characters are stripped first. A 12-digit number already
// carrying the 91 country code keeps it; an 11-digit number with a leading
// trunk zero drops the zero; a bare 10-digit number gets the country code
// prefixed. Anything else falls back to prefixing +91 onto whatever digits
// remain, which preserves historical importer behavior for odd-length
// inputs. Returns "" when the input has no digits at all.
func Phone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case digits == "":
		return ""
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return "+" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		return "+91" + digits[1:]
	case len(digits) == 10:
		return "+91" + digits
	default:
		return "+91" + digits
	}
}
