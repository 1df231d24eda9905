package worker

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/docquery/internal/embeddings"
	"github.com/docquery/internal/glossary"
	"github.com/docquery/internal/ingest"
	"github.com/docquery/internal/parser"
	"github.com/docquery/internal/queue"
	"github.com/docquery/internal/vectordb"
)

// chanQueue is an in-memory Queue for worker tests.
type chanQueue struct {
	jobs chan queue.Job
}

func newChanQueue(size int) *chanQueue {
	return &chanQueue{jobs: make(chan queue.Job, size)}
}

func (c *chanQueue) Enqueue(ctx context.Context, job queue.Job) error {
	c.jobs <- job
	return nil
}

func (c *chanQueue) Dequeue(ctx context.Context) (queue.Job, error) {
	select {
	case <-ctx.Done():
		return queue.Job{}, ctx.Err()
	case job := <-c.jobs:
		return job, nil
	}
}

func TestStartWorkers(t *testing.T) {
	ctx := context.Background()
	q := newChanQueue(10)

	var mu sync.Mutex
	var processed []queue.Job
	handler := func(ctx context.Context, job queue.Job) error {
		mu.Lock()
		defer mu.Unlock()
		processed = append(processed, job)
		return nil
	}

	numJobs := 3
	for i := 0; i < numJobs; i++ {
		job, err := queue.NewIngestFileJob("/docs/file.txt")
		if err != nil {
			t.Fatalf("NewIngestFileJob failed: %v", err)
		}
		if err := q.Enqueue(ctx, job); err != nil {
			t.Fatalf("Enqueue failed: %v", err)
		}
	}

	workerCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- StartWorkers(workerCtx, q, handler, 2)
	}()

	deadline := time.After(5 * time.Second)
	for {
		mu.Lock()
		count := len(processed)
		mu.Unlock()
		if count == numJobs {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for jobs, processed %d of %d", count, numJobs)
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("StartWorkers returned error: %v", err)
	}
}

func TestIngestHandlerFolderJob(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("worker ingested content"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := vectordb.NewMemoryStore()
	pipeline := ingest.NewPipeline(parser.NewFileExtractor(), glossary.AdjacentLines{}, embeddings.NewMockEmbedder(4), store, nil)
	handler := IngestHandler(pipeline)

	job, err := queue.NewIngestFolderJob(dir)
	if err != nil {
		t.Fatalf("NewIngestFolderJob failed: %v", err)
	}
	if err := handler(context.Background(), job); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if store.Count() != 1 {
		t.Errorf("expected 1 stored record, got %d", store.Count())
	}
}

func TestIngestHandlerFileJob(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("single file job"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := vectordb.NewMemoryStore()
	pipeline := ingest.NewPipeline(parser.NewFileExtractor(), glossary.AdjacentLines{}, embeddings.NewMockEmbedder(4), store, nil)
	handler := IngestHandler(pipeline)

	job, err := queue.NewIngestFileJob(path)
	if err != nil {
		t.Fatalf("NewIngestFileJob failed: %v", err)
	}
	if err := handler(context.Background(), job); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if store.Count() != 1 {
		t.Errorf("expected 1 stored record, got %d", store.Count())
	}
}

func TestIngestHandlerInvalidPayload(t *testing.T) {
	pipeline := ingest.NewPipeline(parser.NewFileExtractor(), glossary.AdjacentLines{}, embeddings.NewMockEmbedder(4), vectordb.NewMemoryStore(), nil)
	handler := IngestHandler(pipeline)

	job := queue.Job{Type: queue.JobTypeIngestFolder, Payload: []byte("not json"), CreatedAt: time.Now()}
	if err := handler(context.Background(), job); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestIngestHandlerUnknownType(t *testing.T) {
	pipeline := ingest.NewPipeline(parser.NewFileExtractor(), glossary.AdjacentLines{}, embeddings.NewMockEmbedder(4), vectordb.NewMemoryStore(), nil)
	handler := IngestHandler(pipeline)

	job := queue.Job{Type: "mystery", CreatedAt: time.Now()}
	if err := handler(context.Background(), job); err != nil {
		t.Errorf("unknown job types should be skipped, got error: %v", err)
	}
}
