// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package document

import (
	"strconv"
	"strings"
)

// Category classifies what a PageRecord holds.
type Category string

const (
	// PageContent is the regular extracted text of a page.
	PageContent Category = "PAGE_CONTENT"
	// Glossary marks the duplicate record kept for a detected glossary page.
	Glossary Category = "GLOSSARY"
)

// PageRecord is one unit of retrieval: the extracted text of a single page
// (or sheet, for non-paginated formats) of a source document.
type PageRecord struct {
	File     string
	Pages    []int
	Category Category
	Text     string
}

// PageLabel returns the page numbers as a hyphen-joined string ("4" or "4-5"),
// the form stored in the vector store's page property.
func (r PageRecord) PageLabel() string {
	parts := make([]string, len(r.Pages))
	for i, p := range r.Pages {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, "-")
}
