package trapdoor

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenizer turns free text into the keyword set that gets indexed.
//
// The policy is configuration. Index time and query time must use the same
// Tokenizer or searches silently stop matching.
type Tokenizer struct {
	MinLength int
	StopWords map[string]struct{}
}

// DefaultTokenizer keeps every non-empty word.
func DefaultTokenizer() *Tokenizer {
	return &Tokenizer{MinLength: 1}
}

// NewTokenizer builds a Tokenizer; stop words are normalized the same way
// as the text.
func NewTokenizer(minLength int, stopWords []string) *Tokenizer {
	sw := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		if w = Normalize(w); w != "" {
			sw[w] = struct{}{}
		}
	}
	if minLength < 1 {
		minLength = 1
	}
	return &Tokenizer{MinLength: minLength, StopWords: sw}
}

// Tokenize splits on every rune that is not a letter or digit, normalizes
// each word, drops stop words and short words, and returns the distinct
// words in sorted order.
func (tk *Tokenizer) Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		w := Normalize(f)
		if utf8.RuneCountInString(w) < tk.MinLength {
			continue
		}
		if _, stop := tk.StopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}
