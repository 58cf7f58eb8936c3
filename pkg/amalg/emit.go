package amalg

import (
	"strings"

	"github.com/Sumatoshi-tech/amalgam/pkg/lang"
)

// Document is the fully assembled output: optional license block, sorted
// imports, and the merged body under one namespace wrapper.
type Document struct {
	License   string
	Imports   []string
	Namespace string
	Body      []string

	profile lang.Profile
}

// NewDocument assembles a document from merged content.
func NewDocument(profile lang.Profile, namespace, license string, merged *Merged) *Document {
	return &Document{
		License:   license,
		Imports:   merged.SortedImports(),
		Namespace: namespace,
		Body:      merged.Body,
		profile:   profile,
	}
}

// Render produces the output bytes: license block, blank line, imports,
// blank line, wrapper-open, body verbatim, wrapper-close. Every section
// boundary ends on a newline so a partial last line in an input cannot
// glue onto the closing brace.
func (d *Document) Render() []byte {
	var b strings.Builder

	if d.License != "" {
		b.WriteString(ensureNewline(d.License))
		b.WriteString("\n")
	}

	for _, imp := range d.Imports {
		b.WriteString(ensureNewline(imp))
	}

	b.WriteString("\n")

	b.WriteString(d.profile.NamespaceKeyword)
	b.WriteString(" ")
	b.WriteString(d.Namespace)
	b.WriteString("\n{\n")

	for i, line := range d.Body {
		if i == len(d.Body)-1 {
			line = ensureNewline(line)
		}

		b.WriteString(line)
	}

	b.WriteString("}\n")

	return []byte(b.String())
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}

	return s + "\n"
}
