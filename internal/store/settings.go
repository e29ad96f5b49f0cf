package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
)

const keySecretSetting = "key_secret"

// GetKeySecret retrieves the service key signing secret from the database.
// If no secret exists, it generates one, stores it, and returns it.
// INSERT OR IGNORE followed by a re-SELECT keeps concurrent first starts
// agreeing on one secret.
func GetKeySecret(ctx context.Context, db *sql.DB) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating key secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
		keySecretSetting, candidate,
	)
	if err != nil {
		return "", fmt.Errorf("storing key secret: %w", err)
	}

	var secret string
	err = db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, keySecretSetting,
	).Scan(&secret)
	if err != nil {
		return "", fmt.Errorf("querying key secret: %w", err)
	}

	return secret, nil
}

// RotateKeySecret replaces the signing secret, invalidating every
// previously issued service key.
func RotateKeySecret(ctx context.Context, db *sql.DB) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating key secret: %w", err)
	}
	secret := hex.EncodeToString(buf)

	_, err := db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		keySecretSetting, secret,
	)
	if err != nil {
		return "", fmt.Errorf("rotating key secret: %w", err)
	}
	return secret, nil
}
