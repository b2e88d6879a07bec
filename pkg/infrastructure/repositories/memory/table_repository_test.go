package memory

import (
	"errors"
	"testing"

	"github.com/vsinha/bigen/pkg/apperrors"
	"github.com/vsinha/bigen/pkg/domain/entities"
)

func TestTableRepository_SaveAndRead(t *testing.T) {
	repo := NewTableRepository()

	raw := entities.NewRawTable(entities.DimKPITargets,
		entities.DimKPITargets.Columns(),
		[][]string{{"Monthly Revenue", "5000000", "Monthly", "Sales"}})

	if err := repo.SaveTable(raw); err != nil {
		t.Fatalf("Failed to save table: %v", err)
	}

	got, err := repo.ReadTable(entities.DimKPITargets)
	if err != nil {
		t.Fatalf("Failed to read table: %v", err)
	}

	if got.Value(0, "KPIName") != "Monthly Revenue" {
		t.Errorf("Expected KPIName Monthly Revenue, got %q", got.Value(0, "KPIName"))
	}

	// Mutating the copy must not change the stored table
	got.Rows[0][0] = "changed"
	again, _ := repo.ReadTable(entities.DimKPITargets)
	if again.Value(0, "KPIName") != "Monthly Revenue" {
		t.Errorf("Stored table was modified through a returned copy")
	}
}

func TestTableRepository_Missing(t *testing.T) {
	repo := NewTableRepository()

	_, err := repo.ReadTable(entities.FactSales)
	if !errors.Is(err, apperrors.ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}

	if err := repo.SaveTable(nil); err == nil {
		t.Error("Expected error saving a nil table")
	}

	raw := entities.NewRawTable(entities.FactSales, entities.FactSales.Columns(), nil)
	_ = repo.SaveTable(raw)
	if _, err := repo.ReadTable(entities.FactSales); err != nil {
		t.Errorf("Expected saved table to be readable: %v", err)
	}
}
