// Package seed puts the data a fresh installation needs into the database:
// the bootstrap admin and, optionally, a YAML fixture of demo content.
package seed

import (
	"errors"
	"fmt"

	"prodtrack/internal/auth"
	"prodtrack/internal/database"
	"prodtrack/internal/logger"
	"prodtrack/internal/models"

	"gorm.io/gorm"
)

type Bootstrap struct {
	AccountName  string
	Password     string
	Organization string
}

// EnsureBootstrap creates the bootstrap organization and admin account unless
// an admin account already exists.
func EnsureBootstrap(db *gorm.DB, b Bootstrap, log *logger.Logger) error {
	if b.AccountName == "" || b.Password == "" || b.Organization == "" {
		return errors.New("bootstrap admin needs account name, password and organization")
	}

	var count int64
	if err := db.Model(&models.Account{}).
		Where("account_type = ?", models.AccountAdmin).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check admin account: %w", err)
	}
	if count > 0 {
		log.Debug("admin account present, skipping bootstrap")
		return nil
	}

	hash, err := auth.HashPassword(b.Password)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		org, err := organizationByName(tx, b.Organization)
		if err != nil {
			return err
		}
		admin := models.Account{
			AccountName:    b.AccountName,
			DisplayName:    "Admin User",
			HashedPassword: hash,
			AccountType:    models.AccountAdmin,
			OrganizationID: org.ID,
		}
		if err := database.Insert(tx, &admin, "Account name"); err != nil {
			return err
		}
		log.Info("created bootstrap admin", "account_name", admin.AccountName, "organization", org.Name)
		return nil
	})
}

// organizationByName returns the organization called name, creating it when missing.
func organizationByName(tx *gorm.DB, name string) (*models.Organization, error) {
	var org models.Organization
	err := tx.Where("name = ?", name).First(&org).Error
	if err == nil {
		return &org, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	org = models.Organization{Name: name, Status: "active"}
	if err := database.Insert(tx, &org, "Organization"); err != nil {
		return nil, err
	}
	return &org, nil
}
