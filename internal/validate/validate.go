// Package validate classifies and sanitizes free-text user input.
//
// Every function is pure: failures come back as ordinary
// model.ValidationResult values, never as errors or panics, so callers
// decide how to surface them. Checks run in a fixed order (emptiness,
// then length, then character pattern) and the first failure wins.
package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"devotional-api/internal/model"
)

const (
	// MaxNameLength caps profile display names.
	MaxNameLength = 50
	// MaxShortTextLength caps single-line fields such as bookmark notes.
	MaxShortTextLength = 100
	// MaxLongTextLength caps journal entry bodies.
	MaxLongTextLength = 2000
	// MaxSubjectLength caps study subject lines.
	MaxSubjectLength = 100
)

// Name validates a profile display name: non-empty after trimming, at
// most MaxNameLength runes, and restricted to Unicode letters, spaces,
// hyphens, and apostrophes.
func Name(text string) model.ValidationResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return invalid("name is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return invalid(fmt.Sprintf("name must be %d characters or fewer", MaxNameLength))
	}
	for _, r := range trimmed {
		if !isNameRune(r) {
			return invalid("name may only contain letters, spaces, hyphens, and apostrophes")
		}
	}
	return valid()
}

// ShortText validates a single-line field: non-empty after trimming and
// at most MaxShortTextLength runes.
func ShortText(text string) model.ValidationResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return invalid("text is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxShortTextLength {
		return invalid(fmt.Sprintf("text must be %d characters or fewer", MaxShortTextLength))
	}
	return valid()
}

// LongText validates a multi-line body. minLength is a caller-supplied
// minimum applied after trimming; pass 0 to allow empty text.
func LongText(text string, minLength int) model.ValidationResult {
	trimmed := strings.TrimSpace(text)
	if minLength > 0 && utf8.RuneCountInString(trimmed) < minLength {
		return invalid(fmt.Sprintf("text must be at least %d characters", minLength))
	}
	if utf8.RuneCountInString(trimmed) > MaxLongTextLength {
		return invalid(fmt.Sprintf("text must be %d characters or fewer", MaxLongTextLength))
	}
	return valid()
}

// StudySubject validates a study subject line: non-empty after trimming
// and at most MaxSubjectLength runes.
func StudySubject(text string) model.ValidationResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return invalid("subject is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxSubjectLength {
		return invalid(fmt.Sprintf("subject must be %d characters or fewer", MaxSubjectLength))
	}
	return valid()
}

// Sanitize strips zero-width and other invisible runes and collapses
// runs of spaces and tabs to a single space. Trailing whitespace is kept
// so an in-progress edit's cursor position is not disturbed. Applying
// Sanitize twice yields the same result as once.
func Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if isInvisible(r) {
			continue
		}
		if r == ' ' || r == '\t' {
			if prevSpace {
				continue
			}
			b.WriteByte(' ')
			prevSpace = true
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// Truncate shortens text to at most maxLength runes, replacing the tail
// with "..." when it has to cut. For maxLength of 3 or fewer the
// ellipsis would not fit, so the text is cut without one.
func Truncate(text string, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-3]) + "..."
}

func isNameRune(r rune) bool {
	if r == ' ' || r == '-' || r == '\'' {
		return true
	}
	return unicode.IsLetter(r)
}

// isInvisible reports whether r is a zero-width or otherwise invisible
// character that should never survive user input.
func isInvisible(r rune) bool {
	switch r {
	case '\u200b', // zero width space
		'\u200c', // zero width non-joiner
		'\u200d', // zero width joiner
		'\u2060', // word joiner
		'\ufeff', // byte order mark
		'\u00ad': // soft hyphen
		return true
	}
	return false
}

func valid() model.ValidationResult {
	return model.ValidationResult{IsValid: true}
}

func invalid(msg string) model.ValidationResult {
	return model.ValidationResult{IsValid: false, Error: msg}
}
