package database_test

import (
	"testing"

	"prodtrack/internal/database"
	"prodtrack/internal/models"
	"prodtrack/internal/testutil"

	"gorm.io/gorm"
)

func TestWriteAuditRollsBackWithTransaction(t *testing.T) {
	db := testutil.DB(t)
	org := testutil.SeedOrganization(t, db, "Org1")
	admin := testutil.SeedAccount(t, db, org.ID, "root", models.AccountAdmin)

	if err := db.Transaction(func(tx *gorm.DB) error {
		return database.WriteAudit(tx, admin.ID, "organization", org.ID, "create", "Org1")
	}); err != nil {
		t.Fatalf("WriteAudit: %v", err)
	}

	_ = db.Transaction(func(tx *gorm.DB) error {
		if err := database.WriteAudit(tx, admin.ID, "organization", org.ID, "update", "renamed"); err != nil {
			return err
		}
		return gorm.ErrInvalidData
	})

	var logs []models.AuditLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatalf("load audit: %v", err)
	}
	if len(logs) != 1 || logs[0].Action != "create" || logs[0].AccountID != admin.ID {
		t.Fatalf("unexpected audit rows: %+v", logs)
	}
}
