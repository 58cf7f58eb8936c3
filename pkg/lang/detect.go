package lang

import (
	"path/filepath"

	"github.com/src-d/enry/v2"
)

// enry language names mapped to profile IDs.
var languageProfiles = map[string]string{
	"C#":  ProfileCSharp,
	"C++": ProfileCpp,
	"C":   ProfileCpp,
}

// Detect returns the profile for the given file, classified by name and
// content. Falls back to DefaultProfile when the language is unknown or
// has no registered profile.
func Detect(path string, content []byte) Profile {
	language := enry.GetLanguage(filepath.Base(path), content)

	id, ok := languageProfiles[language]
	if !ok {
		id = DefaultProfile
	}

	profile, err := Lookup(id)
	if err != nil {
		// Registered IDs above always resolve; keep the fallback total anyway.
		profile = profiles[DefaultProfile]
	}

	return profile
}
