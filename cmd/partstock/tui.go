package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/erazemk/partstock/internal/client"
	"github.com/erazemk/partstock/internal/config"
	"github.com/erazemk/partstock/internal/controller"
	"github.com/erazemk/partstock/internal/db"
	"github.com/erazemk/partstock/internal/notify"
	"github.com/erazemk/partstock/internal/query"
	"github.com/erazemk/partstock/internal/tui"
)

func cmdTUI(cfg config.Config, args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)

	var url string
	fs.StringVar(&url, "url", cfg.URL, "")
	fs.StringVar(&url, "u", cfg.URL, "")

	var key string
	fs.StringVar(&key, "key", cfg.Key, "")
	fs.StringVar(&key, "k", cfg.Key, "")

	var dbPath string
	fs.StringVar(&dbPath, "db", "", "")
	fs.StringVar(&dbPath, "d", "", "")

	var logPath string
	fs.StringVar(&logPath, "log", cfg.LogPath, "")
	fs.StringVar(&logPath, "l", cfg.LogPath, "")

	var strict bool
	fs.BoolVar(&strict, "strict", false, "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: partstock tui [flags]

Flags:
  -u, -url <url>      table service URL (default: http://localhost:8080)
  -k, -key <key>      service key for the table service
  -d, -db <path>      use a local SQLite database instead of a table service
  -l, -log <path>     log file path (default: logging disabled)
  -strict             match search terms as substrings only
  -h, -help           show this help and exit
`)
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	// The screen belongs to the UI, so logs only go to the file.
	closeLog, err := setupLogger(logPath, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if closeLog != nil {
		defer closeLog()
	}

	var table client.Table
	if dbPath != "" {
		database, err := db.OpenWithSchema(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		defer database.Close()
		table = &client.Local{DB: database}
		slog.Info("using local database", "path", dbPath)
	} else {
		if key == "" {
			fmt.Fprintln(os.Stderr, "error: a service key is required (-key or PARTSTOCK_KEY)")
			return 1
		}
		h, err := client.NewHTTP(url, key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		h.Client.Timeout = cfg.Timeout
		table = h
		slog.Info("using table service", "url", h.BaseURL)
	}

	center := notify.NewCenter()
	ctrl := controller.New(table, center, controller.Options{
		Engine: query.Engine{Strict: strict},
		Logger: slog.Default(),
	})
	defer ctrl.Close()

	if err := tui.Run(context.Background(), ctrl, center, tea.WithAltScreen()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
