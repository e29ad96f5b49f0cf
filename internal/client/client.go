// Package client reaches the inventory table. Every failure is reported as
// a *StoreError; callers do not distinguish causes.
package client

import (
	"context"
	"fmt"

	"github.com/erazemk/partstock/internal/model"
)

// Table is the record store contract used by the controller.
type Table interface {
	ListAll(ctx context.Context) ([]model.Part, error)
	Insert(ctx context.Context, p model.NewPart) error
	Update(ctx context.Context, id int64, patch model.Patch) error
	Remove(ctx context.Context, id int64) error
}

// StoreError is the opaque failure of a table operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

var (
	_ Table = (*HTTP)(nil)
	_ Table = (*Local)(nil)
)
