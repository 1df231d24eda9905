// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package vectordb

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
)

// QdrantStore is a thin wrapper around the Qdrant gRPC clients.
type QdrantStore struct {
	collections qdrant.CollectionsClient
	points      qdrant.PointsClient
	collection  string
}

// NewQdrantStore constructs a store over an established gRPC connection.
func NewQdrantStore(conn grpc.ClientConnInterface, collection string) (*QdrantStore, error) {
	if conn == nil {
		return nil, errors.New("qdrant connection is required")
	}
	if collection == "" {
		return nil, errors.New("collection name is required")
	}

	return &QdrantStore{
		collections: qdrant.NewCollectionsClient(conn),
		points:      qdrant.NewPointsClient(conn),
		collection:  collection,
	}, nil
}

// EnsureCollection creates the collection if it doesn't exist. Vectors are
// supplied externally, cosine distance.
func (q *QdrantStore) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid vector dimension: %d", dimension)
	}

	listResp, err := q.collections.List(ctx, &qdrant.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	for _, c := range listResp.GetCollections() {
		if c.GetName() == q.collection {
			return nil
		}
	}

	log.Printf("EnsureCollection: creating collection %s with dimension %d", q.collection, dimension)
	_, err = q.collections.Create(ctx, &qdrant.CreateCollection{
		CollectionName: q.collection,
		VectorsConfig: &qdrant.VectorsConfig{
			Config: &qdrant.VectorsConfig_Params{
				Params: &qdrant.VectorParams{
					Size:     uint64(dimension),
					Distance: qdrant.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", q.collection, err)
	}
	return nil
}

// InsertMany bulk-upserts records into the collection.
func (q *QdrantStore) InsertMany(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(records))
	for _, rec := range records {
		if len(rec.Vector) == 0 {
			return errors.New("record vector cannot be empty")
		}
		points = append(points, &qdrant.PointStruct{
			Id: &qdrant.PointId{
				PointIdOptions: &qdrant.PointId_Uuid{Uuid: uuid.New().String()},
			},
			Vectors: &qdrant.Vectors{
				VectorsOptions: &qdrant.Vectors_Vector{
					Vector: &qdrant.Vector{Data: rec.Vector},
				},
			},
			Payload: map[string]*qdrant.Value{
				"file": {Kind: &qdrant.Value_StringValue{StringValue: rec.File}},
				"page": {Kind: &qdrant.Value_StringValue{StringValue: rec.Page}},
				"text": {Kind: &qdrant.Value_StringValue{StringValue: rec.Text}},
			},
		})
	}

	wait := true
	_, err := q.points.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert %d points: %w", len(points), err)
	}

	log.Printf("InsertMany: collection=%s points=%d", q.collection, len(points))
	return nil
}

// SearchNearVector performs a similarity search.
func (q *QdrantStore) SearchNearVector(ctx context.Context, vector []float32, limit int, scoreThreshold *float32) ([]Hit, error) {
	if len(vector) == 0 {
		return nil, errors.New("query vector cannot be empty")
	}
	if limit <= 0 {
		limit = 3
	}

	resp, err := q.points.Search(ctx, &qdrant.SearchPoints{
		CollectionName: q.collection,
		Vector:         vector,
		Limit:          uint64(limit),
		ScoreThreshold: scoreThreshold,
		WithPayload: &qdrant.WithPayloadSelector{
			SelectorOptions: &qdrant.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, len(resp.GetResult()))
	for _, point := range resp.GetResult() {
		hits = append(hits, Hit{
			File:  stringValue(point.GetPayload(), "file"),
			Page:  stringValue(point.GetPayload(), "page"),
			Text:  stringValue(point.GetPayload(), "text"),
			Score: point.GetScore(),
		})
	}
	return hits, nil
}

// ListFiles scrolls stored payloads and collects distinct file names, sorted.
func (q *QdrantStore) ListFiles(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 50
	}
	scrollLimit := uint32(limit)

	resp, err := q.points.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: q.collection,
		Limit:          &scrollLimit,
		WithPayload: &qdrant.WithPayloadSelector{
			SelectorOptions: &qdrant.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("scroll failed: %w", err)
	}

	seen := make(map[string]bool)
	files := []string{}
	for _, point := range resp.GetResult() {
		file := stringValue(point.GetPayload(), "file")
		if file != "" && !seen[file] {
			seen[file] = true
			files = append(files, file)
		}
	}
	sort.Strings(files)
	return files, nil
}

func stringValue(payload map[string]*qdrant.Value, key string) string {
	if payload == nil {
		return ""
	}
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}
