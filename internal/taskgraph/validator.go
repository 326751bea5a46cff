// Package taskgraph holds the structural rules for tasks: where a task hangs,
// who it may be assigned to, and which dependency edges are acceptable.
//
// Dependency edges are informational. Cycles are not detected.
package taskgraph

import (
	"prodtrack/internal/apperr"
	"prodtrack/internal/database"
	"prodtrack/internal/models"

	"gorm.io/gorm"
)

type ParentKind string

const (
	ParentShot  ParentKind = "shot"
	ParentAsset ParentKind = "asset"
)

// Candidate is the part of a task the rules look at.
type Candidate struct {
	ShotID       *uint
	AssetID      *uint
	AssignedToID *uint
}

// Parent is the shot or asset a task belongs to.
type Parent struct {
	Kind      ParentKind
	ID        uint
	ProjectID uint
}

// Validate runs every task rule.
func Validate(tx *gorm.DB, c Candidate) (Parent, error) {
	parent, err := ResolveParent(tx, c)
	if err != nil {
		return Parent{}, err
	}
	if err := CheckAssignee(tx, c.AssignedToID, parent); err != nil {
		return Parent{}, err
	}
	return parent, nil
}

// ResolveParent requires exactly one of shot/asset and loads it.
func ResolveParent(tx *gorm.DB, c Candidate) (Parent, error) {
	hasShot := c.ShotID != nil && *c.ShotID != 0
	hasAsset := c.AssetID != nil && *c.AssetID != 0

	switch {
	case hasShot && hasAsset:
		return Parent{}, apperr.Invalid(apperr.ReasonTaskParent, "Task cannot be linked to both a Shot and an Asset.")
	case !hasShot && !hasAsset:
		return Parent{}, apperr.Invalid(apperr.ReasonTaskParent, "Task must be linked to a Shot or an Asset.")
	case hasShot:
		shot, err := database.Find[models.Shot](tx, *c.ShotID, "Shot")
		if err != nil {
			return Parent{}, err
		}
		return Parent{Kind: ParentShot, ID: shot.ID, ProjectID: shot.ProjectID}, nil
	default:
		asset, err := database.Find[models.Asset](tx, *c.AssetID, "Asset")
		if err != nil {
			return Parent{}, err
		}
		return Parent{Kind: ParentAsset, ID: asset.ID, ProjectID: asset.ProjectID}, nil
	}
}

// CheckAssignee requires the assigned member to exist and to sit in the
// parent's project. A nil assignee is fine.
func CheckAssignee(tx *gorm.DB, assignedToID *uint, parent Parent) error {
	if assignedToID == nil {
		return nil
	}
	member, err := database.Find[models.ProjectMember](tx, *assignedToID, "Assigned ProjectMember")
	if err != nil {
		return err
	}
	if member.ProjectID != parent.ProjectID {
		return apperr.Invalid(apperr.ReasonCrossProjectAssignment,
			"Cannot assign a task to a member from a different project.")
	}
	return nil
}

// ProjectOf returns the project the task belongs to through its shot or asset.
func ProjectOf(tx *gorm.DB, taskID uint) (uint, error) {
	task, err := database.Find[models.Task](tx, taskID, "Task")
	if err != nil {
		return 0, err
	}
	parent, err := ResolveParent(tx, Candidate{ShotID: task.ShotID, AssetID: task.AssetID})
	if err != nil {
		return 0, err
	}
	return parent.ProjectID, nil
}
