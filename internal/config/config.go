// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the pipelines and server need. It is built once
// at process start and passed by reference; no package-level client handles.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Qdrant    QdrantConfig    `mapstructure:"qdrant"`
	Embedder  EmbedderConfig  `mapstructure:"embedder"`
	Chat      ChatConfig      `mapstructure:"chat"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	HTTPPort    int `mapstructure:"http_port"`
	WorkerCount int `mapstructure:"worker_count"`
}

// QdrantConfig holds vector store connection settings
type QdrantConfig struct {
	Addr       string `mapstructure:"addr"`
	Collection string `mapstructure:"collection"`
}

// EmbedderConfig selects the embedding client
type EmbedderConfig struct {
	Type      string `mapstructure:"type"` // openai, ollama, mock
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`
	Dimension int    `mapstructure:"dimension"`
}

// ChatConfig selects the chat completion model
type ChatConfig struct {
	Model string `mapstructure:"model"`
}

// RetrievalConfig tunes the answer pipeline
type RetrievalConfig struct {
	TopK           int     `mapstructure:"top_k"`
	ScoreThreshold float64 `mapstructure:"score_threshold"` // 0 disables the threshold
}

// IngestConfig holds ingestion defaults
type IngestConfig struct {
	Folder     string `mapstructure:"folder"`
	LedgerPath string `mapstructure:"ledger_path"`
	QueueKey   string `mapstructure:"queue_key"`
}

// Load reads configuration from a yaml file (optional) and DOCQUERY_*
// environment variables, after loading a .env file if present.
func Load(configPath string) (*Config, error) {
	// .env is optional; missing file is fine
	if err := godotenv.Load(); err == nil {
		log.Printf("Load: loaded .env file")
	}

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")

	viper.SetDefault("server.http_port", 8080)
	viper.SetDefault("server.worker_count", 2)
	viper.SetDefault("qdrant.addr", "localhost:6334")
	viper.SetDefault("qdrant.collection", "Documents")
	viper.SetDefault("embedder.type", "openai")
	viper.SetDefault("embedder.model", "text-embedding-3-small")
	viper.SetDefault("chat.model", "gpt-3.5-turbo")
	viper.SetDefault("retrieval.top_k", 3)
	viper.SetDefault("ingest.folder", "./documents")
	viper.SetDefault("ingest.ledger_path", "./docquery.db")
	viper.SetDefault("ingest.queue_key", "ingest:jobs")

	if configPath != "" {
		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		viper.AddConfigPath(".")
		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
			log.Printf("Load: no config file found, using defaults")
		}
	}

	viper.SetEnvPrefix("DOCQUERY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// OpenAIAPIKey returns the OpenAI key from the environment. The key never
// lives in the config file.
func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}
