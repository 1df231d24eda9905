package queue

import (
	"context"
	"encoding/json"
	"time"
)

// JobTypeIngestFolder asks a worker to ingest every supported file in a folder.
const JobTypeIngestFolder = "ingest_folder"

// JobTypeIngestFile asks a worker to ingest a single file.
const JobTypeIngestFile = "ingest_file"

// IngestFolderPayload is the payload of an ingest_folder job.
type IngestFolderPayload struct {
	Folder string `json:"folder"`
}

// IngestFilePayload is the payload of an ingest_file job.
type IngestFilePayload struct {
	Path string `json:"path"`
}

// Job represents a job in the queue.
type Job struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Queue defines the interface for job queues.
type Queue interface {
	// Enqueue adds a job to the queue.
	Enqueue(ctx context.Context, job Job) error

	// Dequeue blocks until a job is available, then returns it.
	// Returns an error if the context is cancelled or if the operation fails.
	Dequeue(ctx context.Context) (Job, error)
}

// NewIngestFolderJob builds an ingest_folder job.
func NewIngestFolderJob(folder string) (Job, error) {
	payload, err := json.Marshal(IngestFolderPayload{Folder: folder})
	if err != nil {
		return Job{}, err
	}
	return Job{Type: JobTypeIngestFolder, Payload: payload, CreatedAt: time.Now()}, nil
}

// NewIngestFileJob builds an ingest_file job.
func NewIngestFileJob(path string) (Job, error) {
	payload, err := json.Marshal(IngestFilePayload{Path: path})
	if err != nil {
		return Job{}, err
	}
	return Job{Type: JobTypeIngestFile, Payload: payload, CreatedAt: time.Now()}, nil
}
