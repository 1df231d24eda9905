// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/docquery/internal/config"
	"github.com/docquery/internal/embeddings"
	"github.com/docquery/internal/glossary"
	"github.com/docquery/internal/ingest"
	"github.com/docquery/internal/ledger"
	"github.com/docquery/internal/parser"
	"github.com/docquery/internal/vectordb"
	"github.com/docquery/internal/watcher"
)

var (
	configPath = flag.String("config", "", "Path to config.yaml")
	folder     = flag.String("folder", "", "Folder of documents to ingest (overrides config)")
	watch      = flag.Bool("watch", false, "Keep watching the folder and ingest new files")
	notify     = flag.Bool("notify", false, "Show a desktop notification per ingested file (watch mode)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	target := *folder
	if target == "" {
		target = cfg.Ingest.Folder
	}

	qdrantConn, err := grpc.Dial(cfg.Qdrant.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("failed to connect to Qdrant: %v", err)
	}
	defer qdrantConn.Close()

	store, err := vectordb.NewQdrantStore(qdrantConn, cfg.Qdrant.Collection)
	if err != nil {
		log.Fatalf("failed to init vector store: %v", err)
	}

	embedder, err := embeddings.New(embeddings.Options{
		Type:      cfg.Embedder.Type,
		APIKey:    config.OpenAIAPIKey(),
		Model:     cfg.Embedder.Model,
		BaseURL:   cfg.Embedder.BaseURL,
		Dimension: cfg.Embedder.Dimension,
	})
	if err != nil {
		log.Fatalf("failed to initialize embedder: %v", err)
	}

	ldg, err := ledger.Open(cfg.Ingest.LedgerPath)
	if err != nil {
		log.Fatalf("failed to open ingest ledger: %v", err)
	}
	defer ldg.Close()

	pipeline := ingest.NewPipeline(parser.NewFileExtractor(), glossary.AdjacentLines{}, embedder, store, ldg)
	ctx := context.Background()

	if *watch {
		watchCtx, cancel := context.WithCancel(ctx)
		go func() {
			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop
			cancel()
		}()
		if err := watcher.New(pipeline, *notify).Watch(watchCtx, target); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
		return
	}

	report, err := pipeline.IngestFolder(ctx, target)
	if err != nil {
		log.Fatalf("ingestion failed: %v", err)
	}

	fmt.Printf("Ingested folder %s (%d files)\n", report.Folder, len(report.Files))
	for _, f := range report.Files {
		if f.Err != "" {
			fmt.Printf("  %s: FAILED: %s\n", f.File, f.Err)
			continue
		}
		fmt.Printf("  %s: %d records\n", f.File, f.Records)
	}
	if failed := report.Failed(); len(failed) > 0 {
		os.Exit(1)
	}
}
