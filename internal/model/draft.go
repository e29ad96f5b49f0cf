package model

import (
	"fmt"
	"strings"
)

// Field identifies one editable field of a Draft.
type Field int

// Draft fields, in form order.
const (
	FieldName Field = iota
	FieldAliases
	FieldVehicleStock
	FieldWarehouseStock
	FieldPrice
)

// Numeric reports whether the field only accepts decimal digits.
func (f Field) Numeric() bool {
	return f == FieldVehicleStock || f == FieldWarehouseStock || f == FieldPrice
}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldAliases:
		return "aliases"
	case FieldVehicleStock:
		return "vehicle_stock"
	case FieldWarehouseStock:
		return "warehouse_stock"
	case FieldPrice:
		return "price"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Draft is the transient form record used to register or edit a part.
// ID is 0 for a part that does not exist yet. Aliases is the comma-joined
// form value; the numeric fields hold raw input.
type Draft struct {
	ID             int64
	Name           string
	Aliases        string
	VehicleStock   string
	WarehouseStock string
	Price          string
}

// DraftFrom copies every field of an existing part into a new draft.
func DraftFrom(p Part) Draft {
	return Draft{
		ID:             p.ID,
		Name:           p.Name,
		Aliases:        JoinAliases(p.Aliases),
		VehicleStock:   p.VehicleStock.String(),
		WarehouseStock: p.WarehouseStock.String(),
		Price:          p.Price.String(),
	}
}

// Get returns the value of a field.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldAliases:
		return d.Aliases
	case FieldVehicleStock:
		return d.VehicleStock
	case FieldWarehouseStock:
		return d.WarehouseStock
	case FieldPrice:
		return d.Price
	}
	return ""
}

// With returns a copy of the draft with one field replaced.
func (d Draft) With(f Field, value string) Draft {
	switch f {
	case FieldName:
		d.Name = value
	case FieldAliases:
		d.Aliases = value
	case FieldVehicleStock:
		d.VehicleStock = value
	case FieldWarehouseStock:
		d.WarehouseStock = value
	case FieldPrice:
		d.Price = value
	}
	return d
}

// IsZero reports whether the draft is empty.
func (d Draft) IsZero() bool {
	return d == Draft{}
}

type counts struct {
	vehicle, warehouse, price Count
}

func (d Draft) counts() (counts, error) {
	var c counts
	var err error
	if c.vehicle, err = ParseCount(d.VehicleStock); err != nil {
		return c, fmt.Errorf("vehicle stock: %w", err)
	}
	if c.warehouse, err = ParseCount(d.WarehouseStock); err != nil {
		return c, fmt.Errorf("warehouse stock: %w", err)
	}
	if c.price, err = ParseCount(d.Price); err != nil {
		return c, fmt.Errorf("price: %w", err)
	}
	return c, nil
}

// NewPart normalizes the draft into an insertable part.
func (d Draft) NewPart() (NewPart, error) {
	c, err := d.counts()
	if err != nil {
		return NewPart{}, err
	}
	return NewPart{
		Name:           strings.TrimSpace(d.Name),
		Aliases:        SplitAliases(d.Aliases),
		VehicleStock:   c.vehicle,
		WarehouseStock: c.warehouse,
		Price:          c.price,
	}, nil
}

// Patch normalizes the draft into a patch that sets every field.
func (d Draft) Patch() (Patch, error) {
	c, err := d.counts()
	if err != nil {
		return Patch{}, err
	}
	name := strings.TrimSpace(d.Name)
	aliases := SplitAliases(d.Aliases)
	return Patch{
		Name:           &name,
		Aliases:        &aliases,
		VehicleStock:   &c.vehicle,
		WarehouseStock: &c.warehouse,
		Price:          &c.price,
	}, nil
}
