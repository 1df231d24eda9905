// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/docquery/internal/ai"
	"github.com/docquery/internal/config"
	"github.com/docquery/internal/embeddings"
	"github.com/docquery/internal/glossary"
	"github.com/docquery/internal/ingest"
	"github.com/docquery/internal/ledger"
	"github.com/docquery/internal/parser"
	"github.com/docquery/internal/queue"
	"github.com/docquery/internal/retrieval"
	"github.com/docquery/internal/server"
	"github.com/docquery/internal/vectordb"
	"github.com/docquery/internal/worker"
)

var (
	configPath = flag.String("config", "", "Path to config.yaml")
	httpPort   = flag.Int("http-port", 0, "HTTP server port (overrides config)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *httpPort != 0 {
		cfg.Server.HTTPPort = *httpPort
	}

	// Connect to Qdrant via gRPC
	qdrantConn, err := grpc.Dial(cfg.Qdrant.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("failed to connect to Qdrant: %v", err)
	}
	defer qdrantConn.Close()

	store, err := vectordb.NewQdrantStore(qdrantConn, cfg.Qdrant.Collection)
	if err != nil {
		log.Fatalf("failed to init vector store: %v", err)
	}

	embedder, chat := buildClients(cfg)
	log.Printf("Initialized embedder: %s (dimension: %d)", cfg.Embedder.Type, embedder.Dimension())

	ldg, err := ledger.Open(cfg.Ingest.LedgerPath)
	if err != nil {
		log.Fatalf("failed to open ingest ledger: %v", err)
	}
	defer ldg.Close()

	pipeline := ingest.NewPipeline(parser.NewFileExtractor(), glossary.AdjacentLines{}, embedder, store, ldg)

	// Redis and the job queue are optional: without them /api/ingest is
	// unavailable but everything else works.
	ctx := context.Background()
	var jobQueue queue.Queue
	var workerCancel context.CancelFunc
	if redisClient, err := config.NewRedisClient(ctx); err != nil {
		log.Printf("warning: failed to connect to Redis: %v, background ingestion will not be available", err)
	} else {
		jobQueue, err = queue.NewRedisQueue(redisClient, cfg.Ingest.QueueKey)
		if err != nil {
			log.Fatalf("failed to create job queue: %v", err)
		}

		workerCtx, cancel := context.WithCancel(ctx)
		workerCancel = cancel
		go func() {
			log.Printf("Starting %d background workers", cfg.Server.WorkerCount)
			if err := worker.StartWorkers(workerCtx, jobQueue, worker.IngestHandler(pipeline), cfg.Server.WorkerCount); err != nil {
				log.Printf("worker error: %v", err)
			}
		}()
	}

	answerer := retrieval.NewAnswerer(embedder, store, chat)
	service := server.NewService(answerer, store, ldg, jobQueue, cfg)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: service.Routes(),
	}

	go func() {
		log.Printf("HTTP server listening on %d", cfg.Server.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	waitForShutdown(httpServer, workerCancel)
}

// buildClients creates the embedding and chat clients. Without an OpenAI key
// the process still comes up with mock clients, for local development.
func buildClients(cfg *config.Config) (embeddings.Embedder, ai.ChatClient) {
	apiKey := config.OpenAIAPIKey()

	embedderType := cfg.Embedder.Type
	if embedderType == "openai" && apiKey == "" {
		log.Printf("warning: OPENAI_API_KEY not set, using mock embedder")
		embedderType = "mock"
	}

	embedder, err := embeddings.New(embeddings.Options{
		Type:      embedderType,
		APIKey:    apiKey,
		Model:     cfg.Embedder.Model,
		BaseURL:   cfg.Embedder.BaseURL,
		Dimension: cfg.Embedder.Dimension,
	})
	if err != nil {
		log.Fatalf("failed to initialize embedder: %v", err)
	}

	var chat ai.ChatClient
	if apiKey == "" {
		log.Printf("warning: OPENAI_API_KEY not set, using mock chat client")
		chat = ai.NewMockChat("(chat model unavailable: OPENAI_API_KEY not set)")
	} else {
		chat, err = ai.NewOpenAIChat(apiKey, cfg.Chat.Model)
		if err != nil {
			log.Fatalf("failed to initialize chat client: %v", err)
		}
	}

	return embedder, chat
}

func waitForShutdown(httpServer *http.Server, workerCancel context.CancelFunc) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Println("Shutting down server...")

	if workerCancel != nil {
		workerCancel()
	}

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}
}
