package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/erazemk/partstock/internal/api"
	"github.com/erazemk/partstock/internal/auth"
	"github.com/erazemk/partstock/internal/config"
	"github.com/erazemk/partstock/internal/db"
	"github.com/erazemk/partstock/internal/store"
)

func cmdServe(cfg config.Config, args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)

	var dbPath string
	fs.StringVar(&dbPath, "db", cfg.DBPath, "")
	fs.StringVar(&dbPath, "d", cfg.DBPath, "")

	var addr string
	fs.StringVar(&addr, "addr", cfg.Addr, "")
	fs.StringVar(&addr, "a", cfg.Addr, "")

	var logPath string
	fs.StringVar(&logPath, "log", cfg.LogPath, "")
	fs.StringVar(&logPath, "l", cfg.LogPath, "")

	var origins string
	fs.StringVar(&origins, "cors", strings.Join(cfg.CORSOrigins, ","), "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: partstock serve [flags]

Flags:
  -d, -db <path>          SQLite database path (default: partstock.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -cors <origins>         comma-separated allowed origins (default: any)
  -h, -help               show this help and exit
`)
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		return 1
	}

	// INFO/WARN to stdout, ERROR to stderr, optionally also to a file.
	closeLog, err := setupLogger(logPath, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if closeLog != nil {
		defer closeLog()
	}

	_, statErr := os.Stat(dbPath)
	firstRun := os.IsNotExist(statErr)

	database, err := db.OpenWithSchema(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		return 1
	}
	defer database.Close()

	slog.Info("database ready", "path", dbPath)

	// Signing secret for service keys, created on first use.
	keySecret, err := store.GetKeySecret(context.Background(), database)
	if err != nil {
		slog.Error("failed to get key secret", "error", err)
		return 1
	}

	if firstRun {
		key, err := auth.GenerateKey(keySecret, "initial", auth.DefaultKeyExpiry)
		if err != nil {
			slog.Error("failed to issue initial key", "error", err)
			return 1
		}
		printInitResult(dbPath, key)
		fmt.Println()
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(database, keySecret))

	handler := api.LoggingMiddleware(api.WithCORS(mux, splitOrigins(origins)))

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		return 1
	}

	slog.Info("server stopped, closing database")
	return 0
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// printInitResult prints the database initialization result to stdout.
func printInitResult(dbPath, key string) {
	fmt.Printf("Database created: %s\n", dbPath)
	fmt.Println("Schema initialized.")
	fmt.Println()
	fmt.Println("Service key issued:")
	fmt.Printf("  %s\n", key)
	fmt.Println()
	fmt.Println("Pass it to the front-end with -key or PARTSTOCK_KEY.")
	fmt.Println("Issue more keys with \"partstock key\".")
}
