package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"dsacoach/internal/agent"
	"dsacoach/internal/llm"
	"dsacoach/internal/schedule"
	"dsacoach/internal/sessionlog"
	"dsacoach/internal/store"
	"dsacoach/internal/tracker"
	"dsacoach/internal/web"
)

func main() {
	// Load env
	_ = godotenv.Load(".env")

	csvPath := envOr("SCHEDULE_CSV", "dsa_sheet.csv")
	addr := envOr("DSACOACH_ADDR", ":8080")
	dataDir := envOr("DSACOACH_DATA_DIR", defaultDataDir())
	origins := strings.Split(envOr("DSACOACH_CORS_ORIGINS", "http://localhost:3000"), ",")

	catalog, err := schedule.Load(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dsacoach: %v\n", err)
		os.Exit(1)
	}
	slog.Info("schedule loaded", "path", csvPath, "days", catalog.TotalDays())

	// Backend health check happens once here; a failed LevelDB open degrades
	// to the local file for the rest of the process.
	progressStore, backend, err := store.Open(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dsacoach: open store: %v\n", err)
		os.Exit(1)
	}

	logs := sessionlog.New(backend)
	tr := tracker.New(catalog, progressStore)
	a := agent.New(catalog, progressStore, tr, llm.New(), logs)

	// Context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\ndsacoach: shutting down")
		cancel()
	}()

	// Background session flush, independent of request handling.
	go logs.Run(ctx)

	srv := web.NewServer(a, origins)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(addr) }()
	slog.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		if err != nil {
			fmt.Fprintf(os.Stderr, "dsacoach: server: %v\n", err)
			cancel()
			os.Exit(1)
		}
	case <-ctx.Done():
		// Give the flush goroutine a moment to drain pending session logs.
		time.Sleep(200 * time.Millisecond)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDataDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".cache", "dsacoach")
}
