package access

import (
	"prodtrack/internal/apperr"
	"prodtrack/internal/models"

	"gorm.io/gorm"
)

type Decision int

const (
	Denied Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "denied"
}

// Resolve decides whether id may act on the project. Admins always may;
// everyone else needs a ProjectMember row linking their account to it.
// A missing project is NotFound regardless of who asks.
func Resolve(tx *gorm.DB, id Identity, projectID uint) (Decision, error) {
	var projects int64
	if err := tx.Model(&models.Project{}).Where("id = ?", projectID).Count(&projects).Error; err != nil {
		return Denied, err
	}
	if projects == 0 {
		return Denied, apperr.NotFound("Project not found")
	}
	if id.IsAdmin() {
		return Allowed, nil
	}

	var members int64
	if err := tx.Model(&models.ProjectMember{}).
		Where("project_id = ? AND account_id = ?", projectID, id.AccountID).
		Count(&members).Error; err != nil {
		return Denied, err
	}
	if members == 0 {
		return Denied, nil
	}
	return Allowed, nil
}

// MemberProjectIDs lists the projects id holds a role slot in.
func MemberProjectIDs(tx *gorm.DB, id Identity) ([]uint, error) {
	var ids []uint
	err := tx.Model(&models.ProjectMember{}).
		Where("account_id = ?", id.AccountID).
		Distinct().
		Pluck("project_id", &ids).Error
	return ids, err
}
