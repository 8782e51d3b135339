// Package extract pulls structured résumé entities out of normalized text.
//
// Every extractor is a pure function of its input. Nothing found yields empty values, never an error,
// so callers may hand any extractor the full document when no matching section was detected.
package extract

import (
	"strings"

	"github.com/nikogura/resume-parser/pkg/dictionary"
)

// DefaultMaxSkills caps the number of skills reported for one résumé.
const DefaultMaxSkills = 50

// Extractor holds the read-only state the extractors share. It is safe for concurrent use.
type Extractor struct {
	dict      *dictionary.Dictionary
	maxSkills int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxSkills overrides the skill cap. Non-positive values keep the default.
func WithMaxSkills(n int) (opt Option) {
	opt = func(e *Extractor) {
		if n > 0 {
			e.maxSkills = n
		}
	}
	return opt
}

// New creates an extractor over dict, or over the embedded dictionary when dict is nil.
func New(dict *dictionary.Dictionary, opts ...Option) (extractor *Extractor) {
	if dict == nil {
		dict = dictionary.Default()
	}

	extractor = &Extractor{
		dict:      dict,
		maxSkills: DefaultMaxSkills,
	}
	for _, opt := range opts {
		opt(extractor)
	}

	return extractor
}

// lines returns the trimmed, non-empty lines of text.
func lines(text string) (out []string) {
	out = []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// dedupeFold appends value to list unless an equal-fold copy is already present.
func dedupeFold(list []string, seen map[string]bool, value string) (out []string) {
	key := strings.ToLower(value)
	if value == "" || seen[key] {
		return list
	}
	seen[key] = true
	out = append(list, value)
	return out
}

func truncate(s string, n int) (out string) {
	runes := []rune(s)
	if len(runes) <= n {
		out = s
		return out
	}
	out = strings.TrimSpace(string(runes[:n]))
	return out
}
