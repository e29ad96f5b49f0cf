package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDraftFromJoinsAliases(t *testing.T) {
	p := Part{ID: 3, Name: "Belt", Aliases: Aliases{"A", "B"}, VehicleStock: CountOf(0), Price: CountOf(9000)}
	d := DraftFrom(p)

	if d.Aliases != "A, B" {
		t.Errorf("expected aliases %q, got %q", "A, B", d.Aliases)
	}
	if d.VehicleStock != "0" {
		t.Errorf("expected vehicle stock %q, got %q", "0", d.VehicleStock)
	}
	if d.WarehouseStock != "" {
		t.Errorf("expected unset warehouse stock to be empty, got %q", d.WarehouseStock)
	}

	patch, err := d.Patch()
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if !reflect.DeepEqual(*patch.Aliases, Aliases{"A", "B"}) {
		t.Errorf("expected aliases to re-split to [A B], got %#v", *patch.Aliases)
	}
	if patch.WarehouseStock == nil || patch.WarehouseStock.Set {
		t.Errorf("expected present but unset warehouse stock, got %+v", patch.WarehouseStock)
	}
}

func TestDraftNewPart(t *testing.T) {
	d := Draft{Name: "  Spark Plug ", Aliases: "SP, plug", VehicleStock: "2"}
	p, err := d.NewPart()
	if err != nil {
		t.Fatalf("NewPart: %v", err)
	}
	if p.Name != "Spark Plug" {
		t.Errorf("expected trimmed name, got %q", p.Name)
	}
	if p.VehicleStock != CountOf(2) || p.Price.Set {
		t.Errorf("unexpected counts: %+v", p)
	}
}

func TestDraftWith(t *testing.T) {
	var d Draft
	for _, f := range []Field{FieldName, FieldAliases, FieldVehicleStock, FieldWarehouseStock, FieldPrice} {
		d = d.With(f, f.String())
	}
	for _, f := range []Field{FieldName, FieldAliases, FieldVehicleStock, FieldWarehouseStock, FieldPrice} {
		if d.Get(f) != f.String() {
			t.Errorf("Get(%v) = %q", f, d.Get(f))
		}
	}
	if d.IsZero() {
		t.Error("expected populated draft to be non-zero")
	}
}

func TestPatchJSONKeepsNull(t *testing.T) {
	var p Patch
	if err := json.Unmarshal([]byte(`{"price":null,"name":"X"}`), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p.Price == nil {
		t.Fatal("expected explicit null price to be present")
	}
	if p.Price.Set {
		t.Error("expected price to be unset")
	}
	if p.VehicleStock != nil {
		t.Error("expected absent vehicle_stock to stay nil")
	}

	unset := Count{}
	out, err := json.Marshal(Patch{Price: &unset})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"price":null}` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestPatchRejectsUnknownField(t *testing.T) {
	var p Patch
	if err := json.Unmarshal([]byte(`{"id":4}`), &p); err == nil {
		t.Error("expected error for unknown field")
	}
}
