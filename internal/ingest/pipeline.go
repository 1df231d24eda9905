// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package ingest

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/docquery/internal/embeddings"
	"github.com/docquery/internal/glossary"
	"github.com/docquery/internal/parser"
	"github.com/docquery/internal/vectordb"
)

// FileResult is the outcome of ingesting a single file.
type FileResult struct {
	File    string `json:"file"`
	Records int    `json:"records"`
	Err     string `json:"error,omitempty"`
}

// Report summarizes an ingestion run.
type Report struct {
	Folder   string       `json:"folder"`
	Started  time.Time    `json:"started"`
	Finished time.Time    `json:"finished"`
	Files    []FileResult `json:"files"`
}

// Failed returns the results of files that could not be ingested.
func (r *Report) Failed() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		if f.Err != "" {
			failed = append(failed, f)
		}
	}
	return failed
}

// RunRecorder persists ingestion run outcomes. May be nil.
type RunRecorder interface {
	RecordRun(ctx context.Context, report *Report) error
}

// Pipeline orchestrates extraction, glossary expansion, embedding and
// insertion into the vector store. Construct it once and pass it explicit
// collaborators; it holds no global state.
type Pipeline struct {
	extractor parser.Extractor
	glossary  glossary.Extractor
	embedder  embeddings.Embedder
	store     vectordb.Store
	recorder  RunRecorder
}

// NewPipeline wires the ingestion stages together. recorder may be nil.
func NewPipeline(extractor parser.Extractor, gloss glossary.Extractor, embedder embeddings.Embedder, store vectordb.Store, recorder RunRecorder) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		glossary:  gloss,
		embedder:  embedder,
		store:     store,
		recorder:  recorder,
	}
}

// IngestFolder ingests every supported file in the folder, in name-sorted
// order. Per-file failures are reported in the Report and do not abort the
// run. The collection is created first if absent.
func (p *Pipeline) IngestFolder(ctx context.Context, folder string) (*Report, error) {
	files, err := ListSupportedFiles(folder)
	if err != nil {
		return nil, err
	}

	if err := p.store.EnsureCollection(ctx, p.embedder.Dimension()); err != nil {
		return nil, fmt.Errorf("failed to ensure collection: %w", err)
	}

	report := &Report{Folder: folder, Started: time.Now()}
	for _, file := range files {
		count, err := p.IngestFile(ctx, file)
		result := FileResult{File: filepath.Base(file), Records: count}
		if err != nil {
			result.Err = err.Error()
			log.Printf("IngestFolder: file=%s failed: %v", file, err)
		}
		report.Files = append(report.Files, result)
	}
	report.Finished = time.Now()

	if p.recorder != nil {
		if err := p.recorder.RecordRun(ctx, report); err != nil {
			log.Printf("IngestFolder: failed to record run: %v", err)
		}
	}

	log.Printf("IngestFolder: folder=%s files=%d failed=%d", folder, len(report.Files), len(report.Failed()))
	return report, nil
}

// IngestFile runs the full pipeline for one file and returns the number of
// records inserted. The file's stages are strictly sequential: glossary
// expansion completes before any of its records are embedded.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (int, error) {
	records, err := p.extractor.Extract(path)
	if err != nil {
		return 0, fmt.Errorf("extraction failed: %w", err)
	}

	records = glossary.Expand(records, p.glossary)

	stored := make([]vectordb.Record, 0, len(records))
	for _, rec := range records {
		vector, err := p.embedder.EmbedText(ctx, rec.Text)
		if err != nil {
			return 0, fmt.Errorf("embedding failed for page %s: %w", rec.PageLabel(), err)
		}
		stored = append(stored, vectordb.Record{
			File:   rec.File,
			Page:   rec.PageLabel(),
			Text:   rec.Text,
			Vector: vector,
		})
	}

	if err := p.store.InsertMany(ctx, stored); err != nil {
		return 0, fmt.Errorf("insert failed: %w", err)
	}
	return len(stored), nil
}

// IngestSingle ensures the collection exists and ingests one file. Used by
// watch mode, where files arrive individually.
func (p *Pipeline) IngestSingle(ctx context.Context, path string) (int, error) {
	if err := p.store.EnsureCollection(ctx, p.embedder.Dimension()); err != nil {
		return 0, fmt.Errorf("failed to ensure collection: %w", err)
	}
	return p.IngestFile(ctx, path)
}

// ListSupportedFiles returns the supported files directly inside folder,
// sorted by name for deterministic processing order. Extension matching is
// case-insensitive; temporary files are skipped.
func ListSupportedFiles(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(folder, entry.Name())
		if parser.IsTemporaryFile(path) || !parser.IsSupportedFile(path) {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}
