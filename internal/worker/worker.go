package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/docquery/internal/ingest"
	"github.com/docquery/internal/queue"
)

// HandlerFunc processes a job. It should return an error if processing fails.
type HandlerFunc func(ctx context.Context, job queue.Job) error

// IngestHandler routes ingestion jobs to the pipeline. A single file's
// stages stay sequential inside the pipeline; parallelism only exists across
// jobs, which carry no ordering dependency.
func IngestHandler(pipeline *ingest.Pipeline) HandlerFunc {
	return func(ctx context.Context, job queue.Job) error {
		switch job.Type {
		case queue.JobTypeIngestFolder:
			var payload queue.IngestFolderPayload
			if err := json.Unmarshal(job.Payload, &payload); err != nil {
				return fmt.Errorf("invalid ingest_folder payload: %w", err)
			}
			report, err := pipeline.IngestFolder(ctx, payload.Folder)
			if err != nil {
				return err
			}
			for _, f := range report.Failed() {
				log.Printf("IngestHandler: file=%s error=%s", f.File, f.Err)
			}
			return nil
		case queue.JobTypeIngestFile:
			var payload queue.IngestFilePayload
			if err := json.Unmarshal(job.Payload, &payload); err != nil {
				return fmt.Errorf("invalid ingest_file payload: %w", err)
			}
			_, err := pipeline.IngestSingle(ctx, payload.Path)
			return err
		default:
			log.Printf("IngestHandler: unknown job type: %s", job.Type)
			return nil
		}
	}
}

// StartWorkers starts a pool of workers that process jobs from the queue.
// Workers stop when the context is cancelled.
func StartWorkers(ctx context.Context, q queue.Queue, handler HandlerFunc, workerCount int) error {
	log.Printf("StartWorkers: workerCount=%d", workerCount)

	var wg sync.WaitGroup
	wg.Add(workerCount)

	for i := 0; i < workerCount; i++ {
		workerID := i + 1
		go func() {
			defer wg.Done()
			workerLoop(ctx, q, handler, workerID)
		}()
	}

	wg.Wait()
	log.Printf("StartWorkers: all workers stopped")
	return nil
}

// workerLoop is the main loop for a single worker.
func workerLoop(ctx context.Context, q queue.Queue, handler HandlerFunc, workerID int) {
	for {
		select {
		case <-ctx.Done():
			log.Printf("workerLoop: workerID=%d context cancelled, stopping", workerID)
			return
		default:
		}

		job, err := q.Dequeue(ctx)
		if err != nil {
			if err == context.Canceled || err == context.DeadlineExceeded {
				return
			}
			log.Printf("workerLoop: workerID=%d dequeue error: %v, continuing", workerID, err)
			continue
		}

		if err := handler(ctx, job); err != nil {
			log.Printf("workerLoop: workerID=%d handler error for job type=%s: %v", workerID, job.Type, err)
			continue
		}

		log.Printf("workerLoop: workerID=%d processed job type=%s", workerID, job.Type)
	}
}
