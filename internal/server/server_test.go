package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/docquery/internal/ai"
	"github.com/docquery/internal/config"
	"github.com/docquery/internal/embeddings"
	"github.com/docquery/internal/queue"
	"github.com/docquery/internal/retrieval"
	"github.com/docquery/internal/vectordb"
)

// fakeQueue records enqueued jobs.
type fakeQueue struct {
	jobs []queue.Job
}

func (f *fakeQueue) Enqueue(ctx context.Context, job queue.Job) error {
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeQueue) Dequeue(ctx context.Context) (queue.Job, error) {
	return queue.Job{}, context.Canceled
}

func testConfig() *config.Config {
	return &config.Config{
		Retrieval: config.RetrievalConfig{TopK: 3},
		Ingest:    config.IngestConfig{Folder: "./documents"},
	}
}

func newTestService(store vectordb.Store, chat ai.ChatClient, jobQueue queue.Queue) *Service {
	answerer := retrieval.NewAnswerer(embeddings.NewMockEmbedder(4), store, chat)
	return NewService(answerer, store, nil, jobQueue, testConfig())
}

func TestHandleHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	HandleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "up" {
		t.Errorf("expected status up, got %q", body["status"])
	}
}

func TestHandleAskEmptyQuery(t *testing.T) {
	svc := newTestService(vectordb.NewMemoryStore(), ai.NewMockChat("x"), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"query":"   "}`))
	rec := httptest.NewRecorder()
	svc.HandleAsk(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleAskMethodNotAllowed(t *testing.T) {
	svc := newTestService(vectordb.NewMemoryStore(), ai.NewMockChat("x"), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/ask", nil)
	rec := httptest.NewRecorder()
	svc.HandleAsk(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestHandleAskEmptyStore(t *testing.T) {
	svc := newTestService(vectordb.NewMemoryStore(), ai.NewMockChat("should not answer"), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"query":"anything"}`))
	rec := httptest.NewRecorder()
	svc.HandleAsk(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var answer retrieval.Answer
	if err := json.NewDecoder(rec.Body).Decode(&answer); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if answer.Answer != retrieval.NoDocumentsMessage {
		t.Errorf("expected %q, got %q", retrieval.NoDocumentsMessage, answer.Answer)
	}
}

func TestHandleFiles(t *testing.T) {
	store := vectordb.NewMemoryStore()
	if err := store.InsertMany(context.Background(), []vectordb.Record{
		{File: "manual.pdf", Page: "1", Vector: []float32{1, 0, 0, 0}},
		{File: "guide.txt", Page: "1", Vector: []float32{0, 1, 0, 0}},
	}); err != nil {
		t.Fatal(err)
	}
	svc := newTestService(store, ai.NewMockChat("x"), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
	rec := httptest.NewRecorder()
	svc.HandleFiles(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Files []string `json:"files"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Files) != 2 || body.Files[0] != "guide.txt" || body.Files[1] != "manual.pdf" {
		t.Errorf("unexpected files list: %v", body.Files)
	}
}

func TestHandleIngestWithoutQueue(t *testing.T) {
	svc := newTestService(vectordb.NewMemoryStore(), ai.NewMockChat("x"), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/ingest", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	svc.HandleIngest(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}

func TestHandleIngestEnqueuesJob(t *testing.T) {
	q := &fakeQueue{}
	svc := newTestService(vectordb.NewMemoryStore(), ai.NewMockChat("x"), q)

	req := httptest.NewRequest(http.MethodPost, "/api/ingest", strings.NewReader(`{"folder":"/docs/incoming"}`))
	rec := httptest.NewRecorder()
	svc.HandleIngest(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(q.jobs) != 1 {
		t.Fatalf("expected 1 enqueued job, got %d", len(q.jobs))
	}
	if q.jobs[0].Type != queue.JobTypeIngestFolder {
		t.Errorf("expected job type %s, got %s", queue.JobTypeIngestFolder, q.jobs[0].Type)
	}

	var payload queue.IngestFolderPayload
	if err := json.Unmarshal(q.jobs[0].Payload, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if payload.Folder != "/docs/incoming" {
		t.Errorf("expected folder /docs/incoming, got %s", payload.Folder)
	}
}

func TestHandleIngestDefaultFolder(t *testing.T) {
	q := &fakeQueue{}
	svc := newTestService(vectordb.NewMemoryStore(), ai.NewMockChat("x"), q)

	req := httptest.NewRequest(http.MethodPost, "/api/ingest", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	svc.HandleIngest(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	var payload queue.IngestFolderPayload
	if err := json.Unmarshal(q.jobs[0].Payload, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Folder != "./documents" {
		t.Errorf("expected configured default folder, got %s", payload.Folder)
	}
}

func TestHandleRunsWithoutLedger(t *testing.T) {
	svc := newTestService(vectordb.NewMemoryStore(), ai.NewMockChat("x"), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rec := httptest.NewRecorder()
	svc.HandleRuns(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}
