// File path: cmd/docgen/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/MADDY123987/AI-presentation-doc-generator/internal/api"
	"github.com/MADDY123987/AI-presentation-doc-generator/internal/common"
	"github.com/MADDY123987/AI-presentation-doc-generator/internal/llm"
	"github.com/MADDY123987/AI-presentation-doc-generator/internal/store"
)

func main() {
	logger := common.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logger.Warn("docgen: .env file not loaded", "error", err)
	} else {
		logger.Info("docgen: environment loaded from .env")
	}

	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", defaultDBPath(), "path to the SQLite project database")
	docRoot := flag.String("doc-root", api.DefaultConfig().DocRoot, "directory exported documents are written into")
	flag.Parse()

	logger.Info("docgen: startup initiated", "addr", *addr, "db", *dbPath)

	st, err := store.Open(*dbPath)
	if err != nil {
		logger.Error("docgen: store open failed", "error", err)
		fmt.Println("store error:", err)
		os.Exit(1)
	}
	defer st.Close()

	provider := llm.NewProvider(ctx)
	logger.Info("docgen: llm provider ready", "provider", provider.Name())

	cfg := api.DefaultConfig()
	if trimmed := strings.TrimSpace(*docRoot); trimmed != "" {
		cfg.DocRoot = trimmed
	}

	server, err := api.NewServer(st, provider, &cfg)
	if err != nil {
		logger.Error("docgen: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("docgen: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("docgen: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}

func defaultDBPath() string {
	return filepath.Join("data", "docgen.db")
}
