package models

import "time"

type AuditLog struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	AccountID uint `gorm:"index"`
	Account   *Account

	Entity   string `gorm:"size:50;not null"` // "project", "shot", "task"...
	EntityID uint   `gorm:"index"`
	Action   string `gorm:"size:50;not null"` // "create", "update", "delete"...
	Details  string `gorm:"type:text"`
}
