package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/erazemk/partstock/internal/db"
	"github.com/erazemk/partstock/internal/model"
)

func TestCreateAndGetPart(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	part, err := CreatePart(ctx, database, model.NewPart{
		Name:         "Brake Pad",
		Aliases:      model.Aliases{"BP", "pad"},
		VehicleStock: model.CountOf(2),
		Price:        model.CountOf(45000),
	})
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if part.ID == 0 {
		t.Error("expected generated id")
	}
	if part.Name != "Brake Pad" {
		t.Errorf("expected name 'Brake Pad', got %q", part.Name)
	}
	if !reflect.DeepEqual(part.Aliases, model.Aliases{"BP", "pad"}) {
		t.Errorf("expected aliases [BP pad], got %v", part.Aliases)
	}
	if part.WarehouseStock.Set {
		t.Errorf("expected unset warehouse stock, got %+v", part.WarehouseStock)
	}
	if part.Price != model.CountOf(45000) {
		t.Errorf("expected price 45000, got %+v", part.Price)
	}
}

func TestGetMissingPart(t *testing.T) {
	database := db.NewTestDB(t)

	got, err := GetPart(context.Background(), database, 42)
	if err != nil {
		t.Fatalf("GetPart: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing part, got %+v", got)
	}
}

func TestListPartsOrderedByName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreatePart(ctx, database, model.NewPart{Name: "Oil Filter"})
	CreatePart(ctx, database, model.NewPart{Name: "Air Filter"})
	CreatePart(ctx, database, model.NewPart{Name: "Muffler"})

	parts, err := ListParts(ctx, database)
	if err != nil {
		t.Fatalf("ListParts: %v", err)
	}
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	names := []string{parts[0].Name, parts[1].Name, parts[2].Name}
	want := []string{"Air Filter", "Muffler", "Oil Filter"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("expected order %v, got %v", want, names)
	}
	if parts[0].Aliases == nil {
		t.Error("expected empty alias list, got nil")
	}
}

func TestListPartsEmpty(t *testing.T) {
	database := db.NewTestDB(t)

	parts, err := ListParts(context.Background(), database)
	if err != nil {
		t.Fatalf("ListParts: %v", err)
	}
	if parts == nil || len(parts) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", parts)
	}
}

func TestUpdatePartPartial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	part, _ := CreatePart(ctx, database, model.NewPart{
		Name:           "Wiper",
		Aliases:        model.Aliases{"W"},
		VehicleStock:   model.CountOf(1),
		WarehouseStock: model.CountOf(5),
	})

	stock := model.CountOf(3)
	unset := model.Count{}
	updated, err := UpdatePart(ctx, database, part.ID, model.Patch{VehicleStock: &stock, WarehouseStock: &unset})
	if err != nil {
		t.Fatalf("UpdatePart: %v", err)
	}
	if updated.Name != "Wiper" {
		t.Errorf("expected name untouched, got %q", updated.Name)
	}
	if !reflect.DeepEqual(updated.Aliases, model.Aliases{"W"}) {
		t.Errorf("expected aliases untouched, got %v", updated.Aliases)
	}
	if updated.VehicleStock != model.CountOf(3) {
		t.Errorf("expected vehicle stock 3, got %+v", updated.VehicleStock)
	}
	if updated.WarehouseStock.Set {
		t.Errorf("expected warehouse stock cleared, got %+v", updated.WarehouseStock)
	}
}

func TestUpdateMissingPart(t *testing.T) {
	database := db.NewTestDB(t)
	name := "Ghost"

	_, err := UpdatePart(context.Background(), database, 99, model.Patch{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	_, err = UpdatePart(context.Background(), database, 99, model.Patch{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty patch, got %v", err)
	}
}

func TestDeletePart(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	part, _ := CreatePart(ctx, database, model.NewPart{Name: "Delete Me"})
	if err := DeletePart(ctx, database, part.ID); err != nil {
		t.Fatalf("DeletePart: %v", err)
	}

	parts, _ := ListParts(ctx, database)
	if len(parts) != 0 {
		t.Errorf("expected 0 parts after delete, got %d", len(parts))
	}

	if err := DeletePart(ctx, database, part.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
