// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package glossary

import (
	"strings"
	"testing"

	"github.com/docquery/internal/document"
)

func pageRecord(file string, page int, text string) document.PageRecord {
	return document.PageRecord{
		File:     file,
		Pages:    []int{page},
		Category: document.PageContent,
		Text:     text,
	}
}

func TestAdjacentLines_PairsNonEmptyLines(t *testing.T) {
	text := "GLOSSARY\n\nCPU\nCentral Processing Unit\nRAM\nRandom Access Memory\n"

	gloss := NewMap()
	AdjacentLines{}.ExtractAbbreviations(text, gloss)

	entries := gloss.Entries()
	// The heuristic also pairs the definition line with the next term line;
	// that is the documented adjacent-pair behavior.
	want := map[string]string{
		"CPU":                     "Central Processing Unit",
		"Central Processing Unit": "RAM",
		"RAM":                     "Random Access Memory",
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(entries), entries)
	}
	for _, e := range entries {
		if want[e.Abbreviation] != e.Definition {
			t.Errorf("entry %q: expected definition %q, got %q", e.Abbreviation, want[e.Abbreviation], e.Definition)
		}
	}
}

func TestAdjacentLines_InsertionOrder(t *testing.T) {
	text := "AAA\nfirst\nBBB\nsecond"

	gloss := NewMap()
	AdjacentLines{}.ExtractAbbreviations(text, gloss)

	entries := gloss.Entries()
	if entries[0].Abbreviation != "AAA" {
		t.Errorf("expected AAA first, got %q", entries[0].Abbreviation)
	}
	if entries[len(entries)-1].Abbreviation != "BBB" {
		t.Errorf("expected BBB last, got %q", entries[len(entries)-1].Abbreviation)
	}
}

func TestIsGlossaryPage(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		pageIndex  int
		totalPages int
		want       bool
	}{
		{"marker in tail", "GLOSSARY of terms", 11, 12, true},
		{"marker too early", "GLOSSARY of terms", 0, 20, false},
		{"no marker", "nothing here", 11, 12, false},
		{"lowercase marker ignored", "glossary", 11, 12, false},
		{"short document", "GLOSSARY", 0, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsGlossaryPage(tt.text, tt.pageIndex, tt.totalPages)
			if got != tt.want {
				t.Errorf("IsGlossaryPage(%q, %d, %d) = %v, want %v", tt.text, tt.pageIndex, tt.totalPages, got, tt.want)
			}
		})
	}
}

func TestExpand_NoGlossaryPassthrough(t *testing.T) {
	records := []document.PageRecord{
		pageRecord("a.pdf", 1, "The CPU does work."),
		pageRecord("a.pdf", 2, "More text."),
	}

	out := Expand(records, AdjacentLines{})

	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	for i := range out {
		if out[i].Text != records[i].Text {
			t.Errorf("record %d text modified without glossary: %q", i, out[i].Text)
		}
		if out[i].Category != document.PageContent {
			t.Errorf("record %d category changed: %s", i, out[i].Category)
		}
	}
}

func TestExpand_WholeWordReplacement(t *testing.T) {
	records := []document.PageRecord{
		pageRecord("a.pdf", 1, "The CPU schedules threads. Multiple CPUs exist."),
		pageRecord("a.pdf", 2, "GLOSSARY\nCPU\nCentral Processing Unit"),
	}

	out := Expand(records, AdjacentLines{})

	// Page 1, glossary page content copy, glossary duplicate.
	if len(out) != 3 {
		t.Fatalf("expected 3 records, got %d", len(out))
	}

	first := out[0].Text
	if !strings.Contains(first, "CPU (Central Processing Unit) schedules") {
		t.Errorf("expected whole-word expansion on page 1, got: %q", first)
	}
	// Word boundary: "CPUs" must not be partially rewritten.
	if strings.Contains(first, "CPU (Central Processing Unit)s") {
		t.Errorf("partial match inside CPUs: %q", first)
	}
	if !strings.Contains(first, "CPUs exist") {
		t.Errorf("CPUs should be untouched, got: %q", first)
	}

	if out[2].Category != document.Glossary {
		t.Errorf("expected duplicate GLOSSARY record, got category %s", out[2].Category)
	}
	if out[1].Category != document.PageContent {
		t.Errorf("expected PAGE_CONTENT copy kept, got category %s", out[1].Category)
	}
	if out[2].PageLabel() != out[1].PageLabel() {
		t.Errorf("glossary duplicate should share the page number: %s vs %s", out[2].PageLabel(), out[1].PageLabel())
	}
}

func TestExpand_MarkerOutsideTailIgnored(t *testing.T) {
	// Build a 12-page document with the marker on page 1: too early to count.
	records := make([]document.PageRecord, 0, 12)
	records = append(records, pageRecord("long.pdf", 1, "GLOSSARY\nCPU\nCentral Processing Unit"))
	for p := 2; p <= 12; p++ {
		records = append(records, pageRecord("long.pdf", p, "The CPU hums."))
	}

	out := Expand(records, AdjacentLines{})

	if len(out) != 12 {
		t.Fatalf("expected 12 records (no duplicate), got %d", len(out))
	}
	if strings.Contains(out[1].Text, "(Central Processing Unit)") {
		t.Errorf("expansion applied from a non-tail glossary page: %q", out[1].Text)
	}
}
