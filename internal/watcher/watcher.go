// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package watcher

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gen2brain/beeep"

	"github.com/docquery/internal/ingest"
	"github.com/docquery/internal/parser"
)

// debounceDelay is how long a file must stay quiet before it is ingested.
const debounceDelay = 2 * time.Second

// Watcher ingests supported files as they appear or change in a folder.
type Watcher struct {
	pipeline *ingest.Pipeline
	notify   bool
}

// New creates a folder watcher. When notify is true, a desktop notification
// is shown after each ingested file.
func New(pipeline *ingest.Pipeline, notify bool) *Watcher {
	return &Watcher{pipeline: pipeline, notify: notify}
}

// Watch blocks, watching folder until the context is cancelled.
func (w *Watcher) Watch(ctx context.Context, folder string) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(folder); err != nil {
		return fmt.Errorf("failed to watch folder %s: %w", folder, err)
	}

	debouncer := NewDebouncer(debounceDelay, func(path string) {
		w.ingest(ctx, path)
	})
	defer debouncer.Stop()

	log.Printf("Watch: folder=%s", folder)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if parser.IsTemporaryFile(event.Name) || !parser.IsSupportedFile(event.Name) {
				continue
			}
			debouncer.Trigger(event.Name)
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watch: watcher error: %v", err)
		}
	}
}

func (w *Watcher) ingest(ctx context.Context, path string) {
	count, err := w.pipeline.IngestSingle(ctx, path)
	if err != nil {
		log.Printf("Watch: file=%s ingest failed: %v", path, err)
		w.notifyUser("docquery", fmt.Sprintf("Failed to ingest %s: %v", path, err))
		return
	}
	log.Printf("Watch: file=%s records=%d", path, count)
	w.notifyUser("docquery", fmt.Sprintf("Ingested %s (%d records)", path, count))
}

func (w *Watcher) notifyUser(title, message string) {
	if !w.notify {
		return
	}
	if err := beeep.Notify(title, message, ""); err != nil {
		log.Printf("notifyUser: %v", err)
	}
}
