package access

import (
	"prodtrack/internal/apperr"
	"prodtrack/internal/models"

	"gorm.io/gorm"
)

type Operation string

const (
	OpOrganizationCreate Operation = "organization.create"
	OpOrganizationRead   Operation = "organization.read"
	OpAccountCreate      Operation = "account.create"
	OpAccountRead        Operation = "account.read"
	OpProjectCreate      Operation = "project.create"
	OpProjectRead        Operation = "project.read"
	OpProjectUpdate      Operation = "project.update"
	OpProjectDelete      Operation = "project.delete"
	OpMemberWrite        Operation = "member.write"
	OpShotWrite          Operation = "shot.write"
	OpAssetWrite         Operation = "asset.write"
	OpTaskWrite          Operation = "task.write"
	OpFileWrite          Operation = "file.write"
	OpStorageCreate      Operation = "storage.create"
	OpStorageRead        Operation = "storage.read"
	OpAuditRead          Operation = "audit.read"
)

var (
	everyone   = []models.AccountType{models.AccountAdmin, models.AccountManager, models.AccountArtist, models.AccountClient}
	staff      = []models.AccountType{models.AccountAdmin, models.AccountManager, models.AccountArtist}
	management = []models.AccountType{models.AccountAdmin, models.AccountManager}
	adminOnly  = []models.AccountType{models.AccountAdmin}
)

var roleTable = map[Operation][]models.AccountType{
	OpOrganizationCreate: adminOnly,
	OpOrganizationRead:   everyone,
	OpAccountCreate:      management,
	OpAccountRead:        everyone,
	OpProjectCreate:      management,
	OpProjectRead:        everyone,
	OpProjectUpdate:      management,
	OpProjectDelete:      adminOnly,
	OpMemberWrite:        staff,
	OpShotWrite:          staff,
	OpAssetWrite:         staff,
	OpTaskWrite:          staff,
	OpFileWrite:          staff,
	OpStorageCreate:      adminOnly,
	OpStorageRead:        everyone,
	OpAuditRead:          adminOnly,
}

// Permits reports whether accounts of type t may perform op at all.
// Unknown operations are never permitted.
func Permits(op Operation, t models.AccountType) bool {
	for _, allowed := range roleTable[op] {
		if allowed == t {
			return true
		}
	}
	return false
}

// CheckRole is the role half of the gate; it needs nothing beyond the caller.
func CheckRole(id Identity, op Operation) error {
	if !Permits(op, id.AccountType) {
		return apperr.Denied("Account type %q may not perform %s", id.AccountType, op)
	}
	return nil
}

// Authorize admits a project-scoped operation: role check first, then membership.
// Managers may read, but not change, any project of their own organization.
func Authorize(tx *gorm.DB, id Identity, op Operation, projectID uint) error {
	if err := CheckRole(id, op); err != nil {
		return err
	}
	decision, err := Resolve(tx, id, projectID)
	if err != nil {
		return err
	}
	if decision == Allowed {
		return nil
	}
	if op == OpProjectRead && id.SeesOrganizationProjects() {
		same, err := inOrganization(tx, id, projectID)
		if err != nil {
			return err
		}
		if same {
			return nil
		}
	}
	return apperr.Denied("You are not a member of this project")
}

func inOrganization(tx *gorm.DB, id Identity, projectID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.Project{}).
		Where("id = ? AND organization_id = ?", projectID, id.OrganizationID).
		Count(&count).Error
	return count > 0, err
}
