package amalg

import (
	"sort"
)

// SourceFile is one decoded input: its path and its lines, terminators
// preserved, BOM already stripped.
type SourceFile struct {
	Path  string
	Lines []string
}

// Merged is the result of folding the classified lines of an ordered file
// list: the deduplicated import set and the ordered body.
type Merged struct {
	imports map[string]struct{}

	// Body lines in file-then-line order, duplicates kept.
	Body []string

	// FileCount is the number of files folded in.
	FileCount int
}

// Merge folds files, in the given order, into the import set and body
// list. It is a pure function of its inputs: same files, same order, same
// result.
func Merge(tokenizer Tokenizer, files []SourceFile) *Merged {
	merged := &Merged{
		imports:   make(map[string]struct{}),
		FileCount: len(files),
	}

	for _, file := range files {
		for _, record := range tokenizer.Tokenize(file.Lines) {
			switch record.Kind {
			case KindImport:
				merged.imports[record.Text] = struct{}{}
			case KindBody:
				merged.Body = append(merged.Body, record.Text)
			case KindNamespace, KindDelimiter:
				// Dropped; the emitter writes one synthetic wrapper.
			}
		}
	}

	return merged
}

// ImportCount returns the number of distinct import lines.
func (m *Merged) ImportCount() int {
	return len(m.imports)
}

// SortedImports returns the import lines in lexicographic order. Exact
// text is the set key, so directives differing only in trailing
// whitespace stay distinct.
func (m *Merged) SortedImports() []string {
	imports := make([]string, 0, len(m.imports))
	for line := range m.imports {
		imports = append(imports, line)
	}

	sort.Strings(imports)

	return imports
}
