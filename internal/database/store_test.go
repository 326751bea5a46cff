package database_test

import (
	"testing"

	"prodtrack/internal/apperr"
	"prodtrack/internal/database"
	"prodtrack/internal/models"
	"prodtrack/internal/testutil"
)

func TestInsertTranslatesUniqueViolation(t *testing.T) {
	db := testutil.DB(t)
	testutil.SeedOrganization(t, db, "Org1")

	dup := &models.Organization{Name: "Org1", Status: "active"}
	err := database.Insert(db, dup, "Organization")
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("duplicate organization: want Conflict, got %v", err)
	}
	if n := testutil.Count(t, db, &models.Organization{}); n != 1 {
		t.Fatalf("organizations: want=1 got=%d", n)
	}
}

func TestEnsureUnique(t *testing.T) {
	db := testutil.DB(t)
	org := testutil.SeedOrganization(t, db, "Org1")
	alice := testutil.SeedAccount(t, db, org.ID, "alice", models.AccountArtist)

	err := database.EnsureUnique(db, &models.Account{}, "account_name", "alice", 0, "Account name")
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("want Conflict, got %v", err)
	}
	if err := database.EnsureUnique(db, &models.Account{}, "account_name", "alice", alice.ID, "Account name"); err != nil {
		t.Fatalf("excluding own row: %v", err)
	}
	if err := database.EnsureUnique(db, &models.Account{}, "account_name", "bob", 0, "Account name"); err != nil {
		t.Fatalf("fresh name: %v", err)
	}
}

func TestFindNotFound(t *testing.T) {
	db := testutil.DB(t)
	_, err := database.Find[models.Shot](db, 42, "Shot")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("want NotFound, got %v", err)
	}
	if err.Error() != "Shot not found" {
		t.Fatalf("message: got %q", err.Error())
	}
}

func TestUpdateSavesColumns(t *testing.T) {
	db := testutil.DB(t)
	org := testutil.SeedOrganization(t, db, "Org1")
	p := testutil.SeedProject(t, db, org.ID, "P1")
	shot := testutil.SeedShot(t, db, p.ID, "SH001")

	shot.Status = "in_progress"
	if err := database.Update(db, shot, "Shot"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := database.Find[models.Shot](db, shot.ID, "Shot")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.Status != "in_progress" {
		t.Fatalf("status: got %q", got.Status)
	}
}
