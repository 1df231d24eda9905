package vectordb

import (
	"context"
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// MemoryStore is a brute-force in-memory Store used by tests and for running
// without a Qdrant instance. Cosine similarity over normalized vectors.
type MemoryStore struct {
	mu        sync.RWMutex
	dimension int
	records   []Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// EnsureCollection fixes the vector dimension. Existing records are kept,
// matching the create-if-absent contract.
func (m *MemoryStore) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dimension == 0 {
		m.dimension = dimension
	}
	return nil
}

// InsertMany appends records, validating vector length.
func (m *MemoryStore) InsertMany(ctx context.Context, records []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range records {
		if m.dimension != 0 && len(rec.Vector) != m.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	m.records = append(m.records, records...)
	return nil
}

// SearchNearVector scores every record and returns the top hits, similarity
// descending with (file, page) as a deterministic tie-break.
func (m *MemoryStore) SearchNearVector(ctx context.Context, vector []float32, limit int, scoreThreshold *float32) ([]Hit, error) {
	if len(vector) == 0 {
		return nil, errors.New("query vector cannot be empty")
	}
	if limit <= 0 {
		limit = 3
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	hits := make([]Hit, 0, len(m.records))
	for _, rec := range m.records {
		score := cosine(rec.Vector, vector)
		if scoreThreshold != nil && score < *scoreThreshold {
			continue
		}
		hits = append(hits, Hit{File: rec.File, Page: rec.Page, Text: rec.Text, Score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		if hits[i].File != hits[j].File {
			return hits[i].File < hits[j].File
		}
		pi, pj := leadingPage(hits[i].Page), leadingPage(hits[j].Page)
		if pi != pj {
			return pi < pj
		}
		return hits[i].Page < hits[j].Page
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// ListFiles returns distinct file names among up to limit records, sorted.
func (m *MemoryStore) ListFiles(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 50
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	files := []string{}
	for i, rec := range m.records {
		if i >= limit {
			break
		}
		if rec.File != "" && !seen[rec.File] {
			seen[rec.File] = true
			files = append(files, rec.File)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Count reports the number of stored records.
func (m *MemoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Records returns a copy of the stored records, for test assertions.
func (m *MemoryStore) Records() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// leadingPage parses the first number of a hyphen-joined page label, so ties
// order numerically ("2" before "10").
func leadingPage(label string) int {
	first, _, _ := strings.Cut(label, "-")
	n, err := strconv.Atoi(first)
	if err != nil {
		return 0
	}
	return n
}

func cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
