package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/docquery/internal/ingest"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("failed to open ledger: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordAndListRuns(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)

	older := &ingest.Report{
		Folder:   "/docs/old",
		Started:  time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Finished: time.Date(2025, 6, 1, 10, 1, 0, 0, time.UTC),
		Files: []ingest.FileResult{
			{File: "a.pdf", Records: 12},
			{File: "b.pdf", Records: 0, Err: "extraction failed"},
		},
	}
	newer := &ingest.Report{
		Folder:   "/docs/new",
		Started:  time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC),
		Finished: time.Date(2025, 7, 1, 10, 2, 0, 0, time.UTC),
		Files:    []ingest.FileResult{{File: "c.txt", Records: 1}},
	}

	if err := l.RecordRun(ctx, older); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if err := l.RecordRun(ctx, newer); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	runs, err := l.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	// Newest first.
	if runs[0].Folder != "/docs/new" {
		t.Errorf("expected newest run first, got folder %s", runs[0].Folder)
	}
	if runs[1].Folder != "/docs/old" {
		t.Errorf("expected older run second, got folder %s", runs[1].Folder)
	}

	if len(runs[1].Files) != 2 {
		t.Fatalf("expected 2 file results, got %d", len(runs[1].Files))
	}
	var failedSeen bool
	for _, f := range runs[1].Files {
		if f.File == "b.pdf" {
			failedSeen = true
			if f.Err != "extraction failed" {
				t.Errorf("expected error to round-trip, got %q", f.Err)
			}
		}
	}
	if !failedSeen {
		t.Error("failed file result missing from run")
	}
	if runs[0].ID == "" || runs[0].ID == runs[1].ID {
		t.Error("run IDs must be unique and non-empty")
	}
}

func TestListRunsLimit(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)

	for i := 0; i < 5; i++ {
		report := &ingest.Report{
			Folder:   "/docs",
			Started:  time.Date(2025, 6, 1, 10, i, 0, 0, time.UTC),
			Finished: time.Date(2025, 6, 1, 10, i, 30, 0, time.UTC),
		}
		if err := l.RecordRun(ctx, report); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	runs, err := l.ListRuns(ctx, 3)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("expected 3 runs, got %d", len(runs))
	}
}

func TestListRunsEmpty(t *testing.T) {
	l := openTestLedger(t)
	runs, err := l.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
