package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Part represents one automotive part in the inventory table.
type Part struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Aliases        Aliases `json:"aliases"`
	VehicleStock   Count   `json:"vehicle_stock"`
	WarehouseStock Count   `json:"warehouse_stock"`
	Price          Count   `json:"price"`
}

// NewPart holds the fields of a part that is about to be inserted.
// The store assigns the ID.
type NewPart struct {
	Name           string  `json:"name"`
	Aliases        Aliases `json:"aliases"`
	VehicleStock   Count   `json:"vehicle_stock"`
	WarehouseStock Count   `json:"warehouse_stock"`
	Price          Count   `json:"price"`
}

// Count is a non-negative integer that may be unset. Unset is distinct from
// zero in storage and on the wire (NULL / null).
type Count struct {
	N   int64
	Set bool
}

// CountOf returns a set Count.
func CountOf(n int64) Count {
	return Count{N: n, Set: true}
}

// Int coerces the count for arithmetic: unset counts are 0.
func (c Count) Int() int64 {
	if !c.Set {
		return 0
	}
	return c.N
}

// String returns the decimal value, or "" when unset.
func (c Count) String() string {
	if !c.Set {
		return ""
	}
	return strconv.FormatInt(c.N, 10)
}

// MarshalJSON implements json.Marshaler.
func (c Count) MarshalJSON() ([]byte, error) {
	if !c.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(c.N, 10)), nil
}

// UnmarshalJSON implements json.Unmarshaler. Numeric strings are accepted
// for compatibility with rows written by older clients; an empty string is
// treated as unset.
func (c *Count) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*c = Count{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		parsed, err := ParseCount(str)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid count %s: %w", s, err)
	}
	if n < 0 {
		return fmt.Errorf("count must not be negative: %d", n)
	}
	*c = CountOf(n)
	return nil
}

// Value implements driver.Valuer.
func (c Count) Value() (driver.Value, error) {
	if !c.Set {
		return nil, nil
	}
	return c.N, nil
}

// Scan implements sql.Scanner.
func (c *Count) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c = Count{}
	case int64:
		*c = CountOf(v)
	case []byte:
		return c.UnmarshalJSON(v)
	case string:
		parsed, err := ParseCount(v)
		if err != nil {
			return err
		}
		*c = parsed
	default:
		return fmt.Errorf("cannot scan %T into Count", src)
	}
	return nil
}

// IsCountInput reports whether s is acceptable input for a numeric form
// field: the empty string or ASCII decimal digits only.
func IsCountInput(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseCount converts form input into a Count. The empty string is unset.
func ParseCount(s string) (Count, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Count{}, nil
	}
	if !IsCountInput(s) {
		return Count{}, fmt.Errorf("invalid count %q", s)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Count{}, fmt.Errorf("invalid count %q: %w", s, err)
	}
	return CountOf(n), nil
}

// Aliases is the ordered list of alternate names for a part. It is stored
// as a JSON array in a TEXT column.
type Aliases []string

// Value implements driver.Valuer.
func (a Aliases) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (a *Aliases) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*a = Aliases{}
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Aliases", src)
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("decoding aliases: %w", err)
	}
	if list == nil {
		list = []string{}
	}
	*a = list
	return nil
}

// MarshalJSON always encodes a list, never null.
func (a Aliases) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(a))
}

// SplitAliases turns the comma-joined form value into a list of trimmed,
// non-empty aliases.
func SplitAliases(s string) Aliases {
	out := Aliases{}
	for _, a := range strings.Split(s, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

// JoinAliases is the inverse of SplitAliases for display in the form.
func JoinAliases(a Aliases) string {
	return strings.Join(a, ", ")
}

// StripSpace removes every whitespace character from s.
func StripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// NameKey is the key under which part names must be unique: lowercased with
// all whitespace removed.
func NameKey(name string) string {
	return strings.ToLower(StripSpace(name))
}
