// Package lang defines the per-language syntax profiles the amalgamator
// relies on: the import-directive keyword, the namespace keyword, and the
// block-comment delimiters used when wrapping license text.
package lang

import (
	"errors"
	"fmt"
)

// Profile IDs for the shipped languages.
const (
	ProfileCSharp = "csharp"
	ProfileCpp    = "cpp"
)

// DefaultProfile is the profile used when none is configured and
// detection fails.
const DefaultProfile = ProfileCSharp

// ErrUnknownProfile indicates a requested profile ID is not registered.
var ErrUnknownProfile = errors.New("unknown language profile")

// Profile holds the fixed keywords for one language. Classification of
// input lines is keyword-based, not a real parse; the profile only names
// the keywords to look for.
type Profile struct {
	ID string

	// ImportKeyword introduces an import directive (e.g. "using").
	ImportKeyword string

	// NamespaceKeyword introduces a namespace declaration (e.g. "namespace").
	NamespaceKeyword string

	// CommentOpen and CommentClose delimit a block comment, used to wrap
	// raw license text.
	CommentOpen  string
	CommentClose string
}

var profiles = map[string]Profile{
	ProfileCSharp: {
		ID:               ProfileCSharp,
		ImportKeyword:    "using",
		NamespaceKeyword: "namespace",
		CommentOpen:      "/*",
		CommentClose:     "*/",
	},
	ProfileCpp: {
		ID:               ProfileCpp,
		ImportKeyword:    "#include",
		NamespaceKeyword: "namespace",
		CommentOpen:      "/*",
		CommentClose:     "*/",
	},
}

// Lookup returns the profile registered under id.
func Lookup(id string) (Profile, error) {
	profile, ok := profiles[id]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, id)
	}

	return profile, nil
}

// IDs returns the registered profile IDs. Order is unspecified.
func IDs() []string {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}

	return ids
}
