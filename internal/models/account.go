package models

import "time"

type AccountType string

const (
	AccountAdmin   AccountType = "admin"
	AccountManager AccountType = "manager"
	AccountArtist  AccountType = "artist"
	AccountClient  AccountType = "client"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountAdmin, AccountManager, AccountArtist, AccountClient:
		return true
	}
	return false
}

// Account is a login identity. What it may do inside a project is decided by
// its ProjectMember rows, not by the account itself.
type Account struct {
	ID             uint        `gorm:"primaryKey"`
	AccountName    string      `gorm:"uniqueIndex;size:100;not null"`
	DisplayName    string      `gorm:"size:255;not null"`
	HashedPassword string      `gorm:"not null"`
	AccountType    AccountType `gorm:"type:varchar(20);not null;default:artist"`

	OrganizationID uint `gorm:"not null;index"`
	Organization   *Organization

	ProjectMemberships []ProjectMember

	CreatedAt time.Time
	UpdatedAt time.Time
}
