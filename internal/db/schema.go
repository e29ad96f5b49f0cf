package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Part names are not unique here;
// duplicate detection belongs to the client.
const schema = `
CREATE TABLE IF NOT EXISTS inventory (
    id              INTEGER PRIMARY KEY,
    name            TEXT NOT NULL,
    aliases         TEXT NOT NULL DEFAULT '[]',
    vehicle_stock   INTEGER CHECK (vehicle_stock >= 0),
    warehouse_stock INTEGER CHECK (warehouse_stock >= 0),
    price           INTEGER CHECK (price >= 0),
    created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_inventory_name ON inventory(name);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
