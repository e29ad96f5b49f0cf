package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erazemk/partstock/internal/model"
)

// ErrCancelled is returned when a deletion is not confirmed.
var ErrCancelled = errors.New("deletion cancelled")

// ValidationError blocks a submit before any network call.
type ValidationError struct {
	Fields []model.Field
	Reason string
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.String()
	}
	return fmt.Sprintf("invalid %s: %s", strings.Join(names, ", "), e.Reason)
}

// DuplicateNameError blocks an insert whose name is already registered.
type DuplicateNameError struct {
	Name     string
	Existing model.Part
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("part %q already exists as %q (id %d)", e.Name, e.Existing.Name, e.Existing.ID)
}
