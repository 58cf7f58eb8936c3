// Package amalg implements deterministic source amalgamation: every file
// matched by a glob pattern is merged into one compilation unit with
// deduplicated import directives and a single namespace wrapper.
package amalg

import (
	"strings"

	"github.com/Sumatoshi-tech/amalgam/pkg/lang"
)

// LineKind classifies one input line. Classification is textual, keyed on
// the line's leading characters; it is not a parse of the language.
type LineKind int

const (
	// KindBody is any line that is none of the other kinds. Emitted
	// verbatim, duplicates kept.
	KindBody LineKind = iota

	// KindImport is an import directive (e.g. `using System;`).
	// Deduplicated by exact text, trailing whitespace included.
	KindImport

	// KindNamespace is a namespace declaration line. Dropped; the output
	// carries exactly one synthetic namespace wrapper instead.
	KindNamespace

	// KindDelimiter is a line whose first character is `{` or `}`.
	// Dropped, on the assumption that the namespace block's braces sit
	// alone at the start of their own lines. Braces elsewhere in a line
	// are body content.
	KindDelimiter
)

// Record is one classified input line. Text retains the original line
// terminator, if any.
type Record struct {
	Text string
	Kind LineKind
}

// Tokenizer classifies lines against one language profile.
type Tokenizer struct {
	profile lang.Profile
}

// NewTokenizer returns a tokenizer for the given profile.
func NewTokenizer(profile lang.Profile) Tokenizer {
	return Tokenizer{profile: profile}
}

// Classify returns the typed record for one line. Keyword matches require
// a token boundary after the keyword, so `usingFoo = 1;` is body, not an
// import.
func (t Tokenizer) Classify(line string) Record {
	switch {
	case hasKeyword(line, t.profile.ImportKeyword):
		return Record{Text: line, Kind: KindImport}
	case hasKeyword(line, t.profile.NamespaceKeyword):
		return Record{Text: line, Kind: KindNamespace}
	case strings.HasPrefix(line, "{") || strings.HasPrefix(line, "}"):
		return Record{Text: line, Kind: KindDelimiter}
	default:
		return Record{Text: line, Kind: KindBody}
	}
}

// Tokenize classifies every line of one file.
func (t Tokenizer) Tokenize(lines []string) []Record {
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		records = append(records, t.Classify(line))
	}

	return records
}

// hasKeyword reports whether line starts with keyword followed by a token
// boundary (end of content, whitespace, or a non-identifier character).
func hasKeyword(line, keyword string) bool {
	if keyword == "" || !strings.HasPrefix(line, keyword) {
		return false
	}

	rest := line[len(keyword):]
	if rest == "" || rest == "\n" || rest == "\r\n" {
		return true
	}

	return !isIdentifierChar(rest[0])
}

func isIdentifierChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
