package client

import (
	"context"
	"database/sql"

	"github.com/erazemk/partstock/internal/model"
	"github.com/erazemk/partstock/internal/store"
)

// Local serves the table straight from a SQLite database, for running the
// front-end without a table service.
type Local struct {
	DB *sql.DB
}

// ListAll returns every part, ordered by name.
func (l *Local) ListAll(ctx context.Context) ([]model.Part, error) {
	parts, err := store.ListParts(ctx, l.DB)
	if err != nil {
		return nil, storeErr("listing parts", err)
	}
	return parts, nil
}

// Insert creates a part.
func (l *Local) Insert(ctx context.Context, p model.NewPart) error {
	_, err := store.CreatePart(ctx, l.DB, p)
	return storeErr("inserting part", err)
}

// Update applies a partial update to the part with the given id.
func (l *Local) Update(ctx context.Context, id int64, patch model.Patch) error {
	_, err := store.UpdatePart(ctx, l.DB, id, patch)
	return storeErr("updating part", err)
}

// Remove deletes the part with the given id.
func (l *Local) Remove(ctx context.Context, id int64) error {
	return storeErr("removing part", store.DeletePart(ctx, l.DB, id))
}
