package generator

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mozillazg/go-unidecode"
)

// MinQuestionLength is the exclusive lower bound on accepted question length, in characters.
const MinQuestionLength = 15

var (
	ErrNoQuestionMark = errors.New("does not end with ?")
	ErrMissingShould  = errors.New("does not contain 'should'")
	ErrTooShort       = errors.New("is equal to or shorter than 15 chars")
	ErrDuplicate      = errors.New("is already a seed or generated question")
)

// Normalize turns a raw completion into a candidate: leading whitespace dropped,
// only the first line kept, non-ASCII transliterated.
func Normalize(raw string) string {
	text := strings.TrimLeftFunc(raw, unicode.IsSpace)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return unidecode.Unidecode(text)
}

// Validate applies the rejection predicates in order and returns the first failure.
func Validate(candidate string, seeds, accepted QuestionSet) error {
	if !strings.HasSuffix(candidate, "?") {
		return ErrNoQuestionMark
	}
	if !strings.Contains(strings.ToLower(candidate), "should") {
		return ErrMissingShould
	}
	if utf8.RuneCountInString(candidate) <= MinQuestionLength {
		return ErrTooShort
	}
	if accepted.Has(candidate) || seeds.Has(candidate) {
		return ErrDuplicate
	}
	return nil
}
