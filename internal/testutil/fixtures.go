package testutil

import (
	"testing"

	"prodtrack/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Password is the plain-text password of every seeded account.
const Password = "secret123"

func SeedOrganization(tb testing.TB, db *gorm.DB, name string) *models.Organization {
	tb.Helper()
	org := &models.Organization{Name: name, Status: "active"}
	if err := db.Create(org).Error; err != nil {
		tb.Fatalf("seed organization: %v", err)
	}
	return org
}

func SeedAccount(tb testing.TB, db *gorm.DB, orgID uint, name string, accountType models.AccountType) *models.Account {
	tb.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}
	acc := &models.Account{
		AccountName:    name,
		DisplayName:    name,
		HashedPassword: string(hash),
		AccountType:    accountType,
		OrganizationID: orgID,
	}
	if err := db.Create(acc).Error; err != nil {
		tb.Fatalf("seed account: %v", err)
	}
	return acc
}

func SeedProject(tb testing.TB, db *gorm.DB, orgID uint, name string) *models.Project {
	tb.Helper()
	p := &models.Project{Name: name, Status: models.DefaultProjectStatus, OrganizationID: orgID}
	if err := db.Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

// SeedMember creates a role slot; account may be nil for an unfilled slot.
func SeedMember(tb testing.TB, db *gorm.DB, projectID uint, account *models.Account, role string) *models.ProjectMember {
	tb.Helper()
	m := &models.ProjectMember{
		DisplayName: role,
		Department:  models.DefaultMemberDepartment,
		Role:        role,
		ProjectID:   projectID,
	}
	if account != nil {
		id := account.ID
		m.AccountID = &id
		m.DisplayName = account.DisplayName
	}
	if err := db.Create(m).Error; err != nil {
		tb.Fatalf("seed member: %v", err)
	}
	return m
}

func SeedShot(tb testing.TB, db *gorm.DB, projectID uint, name string) *models.Shot {
	tb.Helper()
	s := &models.Shot{Name: name, Status: models.DefaultWorkStatus, ProjectID: projectID}
	if err := db.Create(s).Error; err != nil {
		tb.Fatalf("seed shot: %v", err)
	}
	return s
}

func SeedAsset(tb testing.TB, db *gorm.DB, projectID uint, name string) *models.Asset {
	tb.Helper()
	a := &models.Asset{Name: name, AssetType: "character", Status: models.DefaultWorkStatus, ProjectID: projectID}
	if err := db.Create(a).Error; err != nil {
		tb.Fatalf("seed asset: %v", err)
	}
	return a
}

// SeedShotTask creates a task under a shot, optionally assigned.
func SeedShotTask(tb testing.TB, db *gorm.DB, shotID uint, name string, assignee *models.ProjectMember) *models.Task {
	tb.Helper()
	sid := shotID
	t := &models.Task{Name: name, Status: models.DefaultTaskStatus, ShotID: &sid}
	if assignee != nil {
		aid := assignee.ID
		t.AssignedToID = &aid
	}
	if err := db.Omit("AssignedTo").Create(t).Error; err != nil {
		tb.Fatalf("seed task: %v", err)
	}
	return t
}

func SeedAssetTask(tb testing.TB, db *gorm.DB, assetID uint, name string) *models.Task {
	tb.Helper()
	aid := assetID
	t := &models.Task{Name: name, Status: models.DefaultTaskStatus, AssetID: &aid}
	if err := db.Create(t).Error; err != nil {
		tb.Fatalf("seed task: %v", err)
	}
	return t
}

func SeedStorageLocation(tb testing.TB, db *gorm.DB, name, basePath string, active bool) *models.StorageLocation {
	tb.Helper()
	loc := &models.StorageLocation{Name: name, LocationType: "local", BasePath: basePath, IsActive: active}
	if err := db.Create(loc).Error; err != nil {
		tb.Fatalf("seed storage location: %v", err)
	}
	return loc
}

// Count returns the number of rows of model matching the optional condition.
func Count(tb testing.TB, db *gorm.DB, model any, query ...any) int64 {
	tb.Helper()
	q := db.Model(model)
	if len(query) > 0 {
		q = q.Where(query[0], query[1:]...)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		tb.Fatalf("count: %v", err)
	}
	return n
}
