package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/erazemk/partstock/internal/auth"
	"github.com/erazemk/partstock/internal/config"
	"github.com/erazemk/partstock/internal/db"
	"github.com/erazemk/partstock/internal/store"
)

func cmdKey(cfg config.Config, args []string) int {
	fs := flag.NewFlagSet("key", flag.ContinueOnError)

	var dbPath string
	fs.StringVar(&dbPath, "db", cfg.DBPath, "")
	fs.StringVar(&dbPath, "d", cfg.DBPath, "")

	var label string
	fs.StringVar(&label, "label", "cli", "")

	var ttl time.Duration
	fs.DurationVar(&ttl, "ttl", auth.DefaultKeyExpiry, "")

	var rotate bool
	fs.BoolVar(&rotate, "rotate", false, "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: partstock key [flags]

Flags:
  -d, -db <path>      SQLite database path (default: partstock.sqlite3)
  -label <text>       label stored in the key (default: cli)
  -ttl <duration>     key lifetime (default: 8760h)
  -rotate             replace the signing secret first, revoking every key
  -h, -help           show this help and exit
`)
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "error: database %s does not exist, run \"partstock serve\" first\n", dbPath)
		return 1
	}

	database, err := db.OpenWithSchema(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer database.Close()

	ctx := context.Background()
	var secret string
	if rotate {
		secret, err = store.RotateKeySecret(ctx, database)
	} else {
		secret, err = store.GetKeySecret(ctx, database)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	key, err := auth.GenerateKey(secret, label, ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if rotate {
		fmt.Fprintln(os.Stderr, "Signing secret rotated. Restart the table service to apply it.")
	}
	fmt.Println(key)
	return 0
}
