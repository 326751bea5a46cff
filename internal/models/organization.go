package models

import "time"

type Organization struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"uniqueIndex;size:255;not null"`
	Status string `gorm:"size:50;not null;default:active"`

	Projects []Project
	Accounts []Account

	CreatedAt time.Time
	UpdatedAt time.Time
}
