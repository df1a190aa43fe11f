// dsacoach-cli is a local REPL for the study coach: the same agent the HTTP
// server hosts, minus the server. Useful for poking at the rule dispatcher and
// checking progress without a frontend.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mattn/go-runewidth"

	"dsacoach/internal/agent"
	"dsacoach/internal/llm"
	"dsacoach/internal/schedule"
	"dsacoach/internal/sessionlog"
	"dsacoach/internal/store"
	"dsacoach/internal/tracker"
)

const (
	ansiReset = "\033[0m"
	ansiDim   = "\033[2m"
	ansiRed   = "\033[31m"
)

func main() {
	_ = godotenv.Load(".env")

	csvPath := envOr("SCHEDULE_CSV", "dsa_sheet.csv")
	dataDir := envOr("DSACOACH_DATA_DIR", defaultDataDir())
	level := envOr("DSACOACH_LEVEL", "SDE1")

	catalog, err := schedule.Load(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dsacoach-cli: %v\n", err)
		os.Exit(1)
	}
	progressStore, backend, err := store.Open(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dsacoach-cli: open store: %v\n", err)
		os.Exit(1)
	}

	logs := sessionlog.New(backend)
	tr := tracker.New(catalog, progressStore)
	a := agent.New(catalog, progressStore, tr, llm.New(), logs)
	sessionID := uuid.New().String()

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// One-shot mode: ask once and exit.
	if len(os.Args) > 1 {
		input := strings.Join(os.Args[1:], " ")
		printResponse(a.HandleMessage(ctx, input, sessionID, "", level))
		a.ClearSession(sessionID)
		return
	}

	runREPL(ctx, a, sessionID, level, dataDir)
	a.ClearSession(sessionID)
}

func runREPL(ctx context.Context, a *agent.Agent, sessionID, level, dataDir string) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "coach> ",
		HistoryFile:       filepath.Join(dataDir, "cli_history"),
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "dsacoach-cli: readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Println("dsacoach — study coach (type 'exit' to quit, 'logs' for this session's history)")
	for {
		if ctx.Err() != nil {
			return
		}
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		switch input {
		case "exit", "quit":
			return
		case "logs":
			printLogs(a.Logs(sessionID))
			continue
		}
		printResponse(a.HandleMessage(ctx, input, sessionID, "", level))
	}
}

func printResponse(resp agent.Response) {
	if resp.Status == "error" {
		fmt.Printf("%s%s%s\n", ansiRed, resp.Message, ansiReset)
		if resp.Snackbar != "" {
			fmt.Printf("%s(%s)%s\n", ansiDim, resp.Snackbar, ansiReset)
		}
		return
	}
	fmt.Println(resp.Message)
}

// printLogs renders the session history two-column, padding the input column
// by display width so CJK and emoji inputs stay aligned.
func printLogs(entries []sessionlog.Entry) {
	if len(entries) == 0 {
		fmt.Println("(no interactions this session)")
		return
	}
	colWidth := 0
	for _, e := range entries {
		if w := runewidth.StringWidth(e.UserInput); w > colWidth {
			colWidth = w
		}
	}
	for _, e := range entries {
		pad := strings.Repeat(" ", colWidth-runewidth.StringWidth(e.UserInput))
		first := strings.SplitN(e.Response, "\n", 2)[0]
		fmt.Printf("%s  %s%s  %s→ %s%s\n",
			e.Timestamp.Format(time.Kitchen), e.UserInput, pad, ansiDim, first, ansiReset)
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
