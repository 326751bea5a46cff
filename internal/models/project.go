package models

import "time"

const (
	DefaultProjectStatus    = "active"
	DefaultMemberDepartment = "Unassigned"
	DefaultMemberRole       = "Member"
)

type Project struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"size:255;not null;index"`
	Status string `gorm:"size:50;not null;default:active"`

	// set once at creation
	OrganizationID uint `gorm:"not null;index"`
	Organization   *Organization

	Members []ProjectMember
	Shots   []Shot
	Assets  []Asset
	Files   []File

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProjectMember is a role slot inside one project. AccountID stays nil until
// somebody with a login fills the slot.
type ProjectMember struct {
	ID          uint   `gorm:"primaryKey"`
	DisplayName string `gorm:"size:255;not null"`
	Department  string `gorm:"size:100"`
	Role        string `gorm:"size:100;not null"`

	ProjectID uint `gorm:"not null;index"`

	AccountID *uint `gorm:"index"`
	Account   *Account

	CreatedAt time.Time
	UpdatedAt time.Time
}
