package model

import (
	"encoding/json"
	"fmt"
)

// Patch is a partial update of a part. Nil fields are left untouched. A
// non-nil count pointing at an unset Count clears the stored value.
type Patch struct {
	Name           *string  `json:"name,omitempty"`
	Aliases        *Aliases `json:"aliases,omitempty"`
	VehicleStock   *Count   `json:"vehicle_stock,omitempty"`
	WarehouseStock *Count   `json:"warehouse_stock,omitempty"`
	Price          *Count   `json:"price,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Aliases == nil && p.VehicleStock == nil &&
		p.WarehouseStock == nil && p.Price == nil
}

// UnmarshalJSON keeps the difference between an absent key and an explicit
// null, which encoding/json collapses for pointer fields.
func (p *Patch) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Patch{}
	for key, value := range raw {
		switch key {
		case "name":
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return fmt.Errorf("decoding name: %w", err)
			}
			p.Name = &s
		case "aliases":
			var list []string
			if err := json.Unmarshal(value, &list); err != nil {
				return fmt.Errorf("decoding aliases: %w", err)
			}
			a := Aliases(list)
			if a == nil {
				a = Aliases{}
			}
			p.Aliases = &a
		case "vehicle_stock":
			c, err := decodeCount(value)
			if err != nil {
				return fmt.Errorf("decoding vehicle_stock: %w", err)
			}
			p.VehicleStock = c
		case "warehouse_stock":
			c, err := decodeCount(value)
			if err != nil {
				return fmt.Errorf("decoding warehouse_stock: %w", err)
			}
			p.WarehouseStock = c
		case "price":
			c, err := decodeCount(value)
			if err != nil {
				return fmt.Errorf("decoding price: %w", err)
			}
			p.Price = c
		default:
			return fmt.Errorf("unknown field %q", key)
		}
	}
	return nil
}

func decodeCount(value json.RawMessage) (*Count, error) {
	var c Count
	if err := c.UnmarshalJSON(value); err != nil {
		return nil, err
	}
	return &c, nil
}
