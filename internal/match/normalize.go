// Package match implements the course-matching engine: text normalization,
// grade conversion, credit imputation, the catalog index, and the cascade
// that reconciles extracted transcript courses against reference data.
//
// Everything in this package is pure data transformation. Reference rows go
// in once, an immutable index comes out, and per-course matching never
// touches shared state — data-quality problems degrade to "no match"
// outcomes instead of errors.
package match

import (
	"regexp"
	"strings"
)

var (
	letterDigitRe = regexp.MustCompile(`([a-zA-Z])(\d)`)

	// Subject code followed by a course number: "COMM 1313", "ENGL101".
	subjectNumberRe = regexp.MustCompile(`^([A-Za-z]+)\s*(\d+)`)
	// Leading alphanumeric run up to a double space or a symbol boundary.
	leadingRunRe = regexp.MustCompile(`^([A-Za-z0-9\s\.]+?)(?:\s{2,}|\s+[^A-Za-z0-9\s\.])`)
)

// Normalize canonicalizes a course identifier or title into a comparable
// key: lowercase, trimmed, hyphens replaced by spaces, and a space inserted
// between a letter and a following digit so "ENGL101" and "ENGL 101" agree.
// Idempotent; empty input yields the empty string.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.ReplaceAll(text, "-", " ")
	return letterDigitRe.ReplaceAllString(text, "$1 $2")
}

// ExtractCourseCode isolates the "SUBJECT NUMBER" token from a combined
// "code + title" string such as "COMM 1313 Intro to Speech". Strategies are
// tried in order of reliability; the result is always normalized.
func ExtractCourseCode(combined string) string {
	combined = strings.TrimSpace(combined)
	if combined == "" {
		return ""
	}

	if m := subjectNumberRe.FindStringSubmatch(combined); m != nil {
		return Normalize(m[1] + " " + m[2])
	}

	if m := leadingRunRe.FindStringSubmatch(combined); m != nil {
		return Normalize(m[1])
	}

	// First token containing a digit, paired with its predecessor.
	words := strings.Fields(combined)
	for i, word := range words {
		if i > 0 && strings.ContainsAny(word, "0123456789") {
			return Normalize(words[i-1] + " " + word)
		}
	}

	if len(words) >= 2 {
		return Normalize(words[0] + " " + words[1])
	}
	if len(words) == 1 {
		return Normalize(words[0])
	}
	return ""
}
