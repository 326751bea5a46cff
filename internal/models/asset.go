package models

import "time"

const DefaultWorkStatus = "pending"

type Shot struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"size:255;not null;index"`
	Status string `gorm:"size:50;not null;default:pending"`

	ProjectID uint `gorm:"not null;index"`

	Tasks []Task

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Asset struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null;index"`
	AssetType string `gorm:"size:100;not null"` // character, prop, environment...
	Status    string `gorm:"size:50;not null;default:pending"`

	ProjectID uint `gorm:"not null;index"`

	Tasks []Task

	CreatedAt time.Time
	UpdatedAt time.Time
}
