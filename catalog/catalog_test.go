// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog_test

import (
	"testing"

	"github.com/IIpapuII/fescvotaciones/catalog"
	"github.com/IIpapuII/fescvotaciones/models"
	"github.com/IIpapuII/fescvotaciones/testutil"
)

func TestSlatesFor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cat := catalog.New(db)

	academic := testutil.CreateTestCouncil(t, db, "Academic Council")
	superior := testutil.CreateTestCouncil(t, db, "Superior Council")

	slate1 := testutil.CreateTestSlate(t, db, academic, 1, models.CategoryStudent)
	slate2 := testutil.CreateTestSlate(t, db, academic, 2, models.CategoryStudent)
	slate3 := testutil.CreateTestSlate(t, db, superior, 1, models.CategoryStudent)

	// Noise that must not appear: another category, an inactive slate
	testutil.CreateTestSlate(t, db, academic, 3, models.CategoryTeacher)
	inactive := testutil.CreateTestSlate(t, db, superior, 2, models.CategoryStudent)
	if _, err := db.Exec(`UPDATE slate SET active = FALSE WHERE id = $1`, inactive); err != nil {
		t.Fatalf("Failed to deactivate slate: %v", err)
	}

	testutil.CreateTestCandidate(t, db, slate1, "Ana Rojas", models.PositionPrincipal)
	testutil.CreateTestCandidate(t, db, slate1, "Luis Prada", models.PositionAlternate)
	testutil.CreateTestCandidate(t, db, slate3, "Marta Diaz", models.PositionPrincipal)

	councils, err := cat.SlatesFor(models.CategoryStudent)
	if err != nil {
		t.Fatalf("SlatesFor failed: %v", err)
	}

	if len(councils) != 2 {
		t.Fatalf("Expected 2 councils, got %d", len(councils))
	}

	// Councils ordered by name
	if councils[0].Council.Name != "Academic Council" || councils[1].Council.Name != "Superior Council" {
		t.Errorf("Councils out of order: %s, %s", councils[0].Council.Name, councils[1].Council.Name)
	}

	academicSlates := councils[0].Slates
	if len(academicSlates) != 2 {
		t.Fatalf("Expected 2 academic slates, got %d", len(academicSlates))
	}
	if academicSlates[0].Slate.ID != slate1 || academicSlates[1].Slate.ID != slate2 {
		t.Error("Academic slates out of number order")
	}

	// Candidates ride along; principal listed before alternate
	if len(academicSlates[0].Candidates) != 2 {
		t.Fatalf("Expected 2 candidates on slate 1, got %d", len(academicSlates[0].Candidates))
	}
	if academicSlates[0].Candidates[0].Name != "Ana Rojas" {
		t.Errorf("Expected principal first, got %s", academicSlates[0].Candidates[0].Name)
	}

	// A slate without candidates returns an empty list, not null
	if academicSlates[1].Candidates == nil {
		t.Error("Expected empty candidate slice, got nil")
	}

	superiorSlates := councils[1].Slates
	if len(superiorSlates) != 1 || superiorSlates[0].Slate.ID != slate3 {
		t.Errorf("Expected only the active superior slate, got %d slates", len(superiorSlates))
	}
}

func TestSlatesForInactiveCouncil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cat := catalog.New(db)

	council := testutil.CreateTestCouncil(t, db, "Retired Council")
	testutil.CreateTestSlate(t, db, council, 1, models.CategoryGraduate)
	if _, err := db.Exec(`UPDATE council_type SET active = FALSE WHERE id = $1`, council); err != nil {
		t.Fatalf("Failed to deactivate council: %v", err)
	}

	councils, err := cat.SlatesFor(models.CategoryGraduate)
	if err != nil {
		t.Fatalf("SlatesFor failed: %v", err)
	}
	if len(councils) != 0 {
		t.Errorf("Expected no councils, got %d", len(councils))
	}
}

func TestSlatesForUnknownCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cat := catalog.New(db)

	if _, err := cat.SlatesFor("janitor"); err == nil {
		t.Error("Expected error for unknown category")
	}
}
