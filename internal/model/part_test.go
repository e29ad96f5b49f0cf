package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestIsCountInput(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"", true},
		{"0", true},
		{"0042", true},
		{"1234567890", true},
		{"-1", false},
		{"1.5", false},
		{"1,000", false},
		{" 1", false},
		{"abc", false},
		{"١٢", false},
	}

	for _, tt := range tests {
		got := IsCountInput(tt.input)
		if got != tt.expected {
			t.Errorf("IsCountInput(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		input   string
		want    Count
		wantErr bool
	}{
		{"", Count{}, false},
		{"   ", Count{}, false},
		{"0", CountOf(0), false},
		{"17", CountOf(17), false},
		{"x", Count{}, true},
		{"99999999999999999999", Count{}, true},
	}

	for _, tt := range tests {
		got, err := ParseCount(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCount(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCount(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestCountIntCoercesUnsetToZero(t *testing.T) {
	if got := (Count{}).Int(); got != 0 {
		t.Errorf("unset count coerced to %d, want 0", got)
	}
	if got := CountOf(5).Int(); got != 5 {
		t.Errorf("CountOf(5).Int() = %d, want 5", got)
	}
}

func TestCountJSON(t *testing.T) {
	var p Part
	data := `{"id":1,"name":"Wiper","aliases":["W"],"vehicle_stock":null,"warehouse_stock":"4","price":1200}`
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p.VehicleStock.Set {
		t.Error("expected vehicle_stock to be unset")
	}
	if p.WarehouseStock != CountOf(4) {
		t.Errorf("expected warehouse_stock 4 from numeric string, got %+v", p.WarehouseStock)
	}
	if p.Price != CountOf(1200) {
		t.Errorf("expected price 1200, got %+v", p.Price)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"id":1,"name":"Wiper","aliases":["W"],"vehicle_stock":null,"warehouse_stock":4,"price":1200}`
	if string(out) != want {
		t.Errorf("Marshal = %s, want %s", out, want)
	}
}

func TestCountRejectsNegative(t *testing.T) {
	var c Count
	if err := json.Unmarshal([]byte("-3"), &c); err == nil {
		t.Error("expected error for negative count")
	}
}

func TestSplitAliases(t *testing.T) {
	tests := []struct {
		input string
		want  Aliases
	}{
		{"", Aliases{}},
		{"A, B", Aliases{"A", "B"}},
		{" A ,, B ,", Aliases{"A", "B"}},
		{"brake shoe", Aliases{"brake shoe"}},
	}

	for _, tt := range tests {
		got := SplitAliases(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitAliases(%q) = %#v, want %#v", tt.input, got, tt.want)
		}
	}
}

func TestNameKey(t *testing.T) {
	if NameKey(" brake pad ") != NameKey("Brake Pad") {
		t.Error("expected names differing in case and whitespace to share a key")
	}
	if NameKey("Brake\tPad") != "brakepad" {
		t.Errorf("NameKey(%q) = %q", "Brake\tPad", NameKey("Brake\tPad"))
	}
	if NameKey("Brake Pad") == NameKey("Brake Pads") {
		t.Error("expected different names to have different keys")
	}
}

func TestAliasesScan(t *testing.T) {
	var a Aliases
	if err := a.Scan(`["A","B"]`); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !reflect.DeepEqual(a, Aliases{"A", "B"}) {
		t.Errorf("Scan = %#v", a)
	}
	if err := a.Scan(nil); err != nil || len(a) != 0 || a == nil {
		t.Errorf("Scan(nil) = %#v, %v; want empty non-nil list", a, err)
	}
}
