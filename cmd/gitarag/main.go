// File path: cmd/gitarag/main.go
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/api"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/common"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/config"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/llm"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/rag"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/telemetry"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Debug("gitarag: .env file not loaded", "error", err)
	} else {
		logger.Info("gitarag: environment loaded from .env")
	}

	configPath := flag.String("config", "", "path to a YAML configuration file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	dataDir := flag.String("data", "", "path to the corpus data directory (overrides config)")
	telemetryPath := flag.String("telemetry", "", "path to the SQLite telemetry database (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("gitarag: config load failed", "path", *configPath, "error", err)
			fmt.Println("config error:", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if env := strings.TrimSpace(os.Getenv("DATA_DIR")); env != "" {
		cfg.DataDir = env
	}
	if trimmed := strings.TrimSpace(*dataDir); trimmed != "" {
		cfg.DataDir = trimmed
	}
	if trimmed := strings.TrimSpace(*addr); trimmed != "" {
		cfg.ServerAddr = trimmed
	}
	if trimmed := strings.TrimSpace(*telemetryPath); trimmed != "" {
		cfg.TelemetryPath = trimmed
	}

	logger.Info("gitarag: startup initiated", "addr", cfg.ServerAddr, "data", cfg.DataDir)

	var store *telemetry.Store
	if cfg.TelemetryPath != "" {
		var err error
		store, err = telemetry.Open(cfg.TelemetryPath)
		if err != nil {
			logger.Warn("gitarag: telemetry disabled", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	provider := llm.NewProvider()
	if provider != nil {
		logger.Info("gitarag: collaborator ready", "provider", provider.Name())
	}

	service, err := rag.New(cfg, provider)
	if err != nil {
		logger.Error("gitarag: initialization failed", "error", err)
		fmt.Println("initialization error:", err)
		os.Exit(1)
	}

	server := api.NewServer(service, store)
	logger.Info("gitarag: server listening", "addr", cfg.ServerAddr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", cfg.ServerAddr)
	if err := http.ListenAndServe(cfg.ServerAddr, server); err != nil {
		logger.Error("gitarag: server stopped", "error", err)
		fmt.Println("server stopped:", err)
		os.Exit(1)
	}
}
