// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package glossary

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docquery/internal/document"
)

// marker is the literal that identifies a glossary page.
const marker = "GLOSSARY"

// tailPages limits detection to the last pages of a document.
const tailPages = 10

// Entry is one abbreviation and its definition.
type Entry struct {
	Abbreviation string
	Definition   string
}

// Map holds a document's abbreviations in the order they were found.
// Later duplicates overwrite the definition but keep the original position.
type Map struct {
	entries []Entry
	index   map[string]int
}

// NewMap creates an empty glossary map.
func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

// Add records an abbreviation/definition pair.
func (m *Map) Add(abbreviation, definition string) {
	if i, ok := m.index[abbreviation]; ok {
		m.entries[i].Definition = definition
		return
	}
	m.index[abbreviation] = len(m.entries)
	m.entries = append(m.entries, Entry{Abbreviation: abbreviation, Definition: definition})
}

// Entries returns the pairs in insertion order.
func (m *Map) Entries() []Entry {
	return m.entries
}

// Len returns the number of distinct abbreviations.
func (m *Map) Len() int {
	return len(m.entries)
}

// Extractor builds an abbreviation map from the text of a glossary page.
// The default implementation pairs adjacent lines; a stricter structured
// parser can be swapped in without touching the pipeline.
type Extractor interface {
	ExtractAbbreviations(text string, into *Map)
}

// AdjacentLines is the adjacent-line-pair heuristic: every pair of
// consecutive non-empty trimmed lines becomes (term, definition). It assumes
// an alternating TERM / Definition layout and will mis-pair on anything else;
// that is a known limitation, not an error.
type AdjacentLines struct{}

// ExtractAbbreviations records a pair for each adjacent non-empty line pair.
func (AdjacentLines) ExtractAbbreviations(text string, into *Map) {
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines)-1; i++ {
		term := strings.TrimSpace(lines[i])
		def := strings.TrimSpace(lines[i+1])
		if term != "" && def != "" {
			into.Add(term, def)
		}
	}
}

// IsGlossaryPage reports whether the page at pageIndex (0-based) of a
// totalPages-long document is a glossary candidate: it must contain the
// GLOSSARY marker and lie within the last ten pages.
func IsGlossaryPage(text string, pageIndex, totalPages int) bool {
	return strings.Contains(text, marker) && pageIndex >= totalPages-tailPages
}

// Expand scans a single document's records for glossary pages, builds the
// abbreviation map, and rewrites every record's text, replacing whole-word
// occurrences of each abbreviation with "abbreviation (definition)".
// Glossary pages are kept as duplicate GLOSSARY records after their
// PAGE_CONTENT copies. Records pass through unmodified when no glossary page
// is found.
func Expand(records []document.PageRecord, extractor Extractor) []document.PageRecord {
	gloss := NewMap()
	out := make([]document.PageRecord, 0, len(records))

	total := len(records)
	for i, rec := range records {
		out = append(out, rec)
		if rec.Category != document.PageContent {
			continue
		}
		if IsGlossaryPage(rec.Text, i, total) {
			extractor.ExtractAbbreviations(rec.Text, gloss)
			dup := rec
			dup.Category = document.Glossary
			out = append(out, dup)
		}
	}

	if gloss.Len() == 0 {
		return out
	}

	for i := range out {
		out[i].Text = rewrite(out[i].Text, gloss)
	}
	return out
}

// rewrite applies every glossary entry to the text, in insertion order,
// matching whole words only and case-sensitively.
func rewrite(text string, gloss *Map) string {
	for _, e := range gloss.Entries() {
		re, err := regexp.Compile(fmt.Sprintf(`\b%s\b`, regexp.QuoteMeta(e.Abbreviation)))
		if err != nil {
			continue
		}
		text = re.ReplaceAllString(text, fmt.Sprintf("%s (%s)", e.Abbreviation, e.Definition))
	}
	return text
}
