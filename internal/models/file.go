package models

import "time"

type StorageLocation struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"uniqueIndex;size:255;not null"`
	LocationType string `gorm:"size:50;not null"` // local, nas, s3...
	BasePath     string `gorm:"size:1024"`
	IsActive     bool   `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type File struct {
	ID               uint   `gorm:"primaryKey"`
	FileID           string `gorm:"uniqueIndex;size:36;not null"`
	OriginalFilename string `gorm:"size:512;not null"`
	RelativePath     string `gorm:"size:1024;not null"`
	FullStoragePath  string `gorm:"size:2048;not null"`
	FileFormat       string `gorm:"size:50;not null"`
	FileType         string `gorm:"size:50;not null"`

	StorageLocationID uint `gorm:"not null;index"`
	StorageLocation   *StorageLocation

	ProjectID uint  `gorm:"not null;index"`
	ShotID    *uint `gorm:"index"`
	AssetID   *uint `gorm:"index"`

	CreatedAt time.Time
}
