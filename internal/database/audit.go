package database

import (
	"prodtrack/internal/models"

	"gorm.io/gorm"
)

// WriteAudit records a mutation inside the caller's transaction, so the audit
// row commits or rolls back together with the change it describes.
func WriteAudit(tx *gorm.DB, accountID uint, entity string, entityID uint, action, details string) error {
	record := models.AuditLog{
		AccountID: accountID,
		Entity:    entity,
		EntityID:  entityID,
		Action:    action,
		Details:   details,
	}
	return tx.Omit("Account").Create(&record).Error
}
