package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/erazemk/partstock/internal/model"
)

// ErrNotFound is returned when an update or delete matches no row.
var ErrNotFound = errors.New("part not found")

var partColumns = []string{"id", "name", "aliases", "vehicle_stock", "warehouse_stock", "price"}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPart(row rowScanner) (model.Part, error) {
	var p model.Part
	err := row.Scan(&p.ID, &p.Name, &p.Aliases, &p.VehicleStock, &p.WarehouseStock, &p.Price)
	return p, err
}

// CreatePart inserts a new part and returns it with its generated ID.
func CreatePart(ctx context.Context, db *sql.DB, p model.NewPart) (*model.Part, error) {
	if p.Aliases == nil {
		p.Aliases = model.Aliases{}
	}
	result, err := db.ExecContext(ctx,
		`INSERT INTO inventory (name, aliases, vehicle_stock, warehouse_stock, price)
		 VALUES (?, ?, ?, ?, ?)`,
		p.Name, p.Aliases, p.VehicleStock, p.WarehouseStock, p.Price,
	)
	if err != nil {
		return nil, fmt.Errorf("creating part: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting part id: %w", err)
	}

	return GetPart(ctx, db, id)
}

// GetPart returns a part by ID, or nil if it does not exist.
func GetPart(ctx context.Context, db *sql.DB, id int64) (*model.Part, error) {
	query, args, err := sq.Select(partColumns...).From("inventory").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building part query: %w", err)
	}

	p, err := scanPart(db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting part: %w", err)
	}
	return &p, nil
}

// ListParts returns every part ordered by name.
func ListParts(ctx context.Context, db *sql.DB) ([]model.Part, error) {
	query, args, err := sq.Select(partColumns...).From("inventory").OrderBy("name ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list query: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing parts: %w", err)
	}
	defer rows.Close()

	parts := []model.Part{}
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning part: %w", err)
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

// UpdatePart applies a partial update and returns the updated part.
func UpdatePart(ctx context.Context, db *sql.DB, id int64, patch model.Patch) (*model.Part, error) {
	if patch.Empty() {
		p, err := GetPart(ctx, db, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, ErrNotFound
		}
		return p, nil
	}

	b := sq.Update("inventory").Where(sq.Eq{"id": id}).Set("updated_at", sq.Expr("CURRENT_TIMESTAMP"))
	if patch.Name != nil {
		b = b.Set("name", *patch.Name)
	}
	if patch.Aliases != nil {
		b = b.Set("aliases", *patch.Aliases)
	}
	if patch.VehicleStock != nil {
		b = b.Set("vehicle_stock", *patch.VehicleStock)
	}
	if patch.WarehouseStock != nil {
		b = b.Set("warehouse_stock", *patch.WarehouseStock)
	}
	if patch.Price != nil {
		b = b.Set("price", *patch.Price)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building update: %w", err)
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("updating part: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking updated rows: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	return GetPart(ctx, db, id)
}

// DeletePart removes a part permanently.
func DeletePart(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting part: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
