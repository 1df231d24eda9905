package parser

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/docquery/internal/document"
)

// extractExcel extracts text from an Excel file, one record per sheet.
// Sheets stand in for pages: sheet N becomes page N.
func extractExcel(filePath string) ([]document.PageRecord, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file: %s", filePath)
	}

	base := filepath.Base(filePath)
	var records []document.PageRecord

	for sheetIdx, sheetName := range sheetList {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			// Skip this sheet if we can't read it (e.g., password protected)
			log.Printf("extractExcel: file=%s sheet=%s unreadable: %v", base, sheetName, err)
			continue
		}

		var builder strings.Builder
		builder.WriteString(fmt.Sprintf("Sheet: %s\n", sheetName))
		for _, row := range rows {
			cells := []string{}
			for _, cell := range row {
				value := strings.TrimSpace(cell)
				if value != "" {
					cells = append(cells, value)
				}
			}
			if len(cells) > 0 {
				builder.WriteString(strings.Join(cells, ", "))
				builder.WriteString("\n")
			}
		}

		text := strings.TrimSpace(builder.String())
		if text == fmt.Sprintf("Sheet: %s", sheetName) {
			continue
		}
		records = append(records, document.PageRecord{
			File:     base,
			Pages:    []int{sheetIdx + 1},
			Category: document.PageContent,
			Text:     text,
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no content extracted from Excel file: %s", filePath)
	}

	return records, nil
}
