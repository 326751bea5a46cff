package seed

import (
	"errors"
	"fmt"
	"os"

	"prodtrack/internal/apperr"
	"prodtrack/internal/auth"
	"prodtrack/internal/database"
	"prodtrack/internal/logger"
	"prodtrack/internal/models"
	"prodtrack/internal/taskgraph"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type Fixture struct {
	Organizations    []OrganizationFixture    `yaml:"organizations"`
	Accounts         []AccountFixture         `yaml:"accounts"`
	StorageLocations []StorageLocationFixture `yaml:"storage_locations"`
	Projects         []ProjectFixture         `yaml:"projects"`
}

type OrganizationFixture struct {
	Name   string `yaml:"name"`
	Status string `yaml:"status"`
}

type AccountFixture struct {
	AccountName  string `yaml:"account_name"`
	DisplayName  string `yaml:"display_name"`
	Password     string `yaml:"password"`
	AccountType  string `yaml:"account_type"`
	Organization string `yaml:"organization"`
}

type StorageLocationFixture struct {
	Name         string `yaml:"name"`
	LocationType string `yaml:"location_type"`
	BasePath     string `yaml:"base_path"`
	Active       *bool  `yaml:"active"`
}

type ProjectFixture struct {
	Name         string          `yaml:"name"`
	Status       string          `yaml:"status"`
	Organization string          `yaml:"organization"`
	Members      []MemberFixture `yaml:"members"`
	Shots        []WorkFixture   `yaml:"shots"`
	Assets       []WorkFixture   `yaml:"assets"`
	Tasks        []TaskFixture   `yaml:"tasks"`
}

type MemberFixture struct {
	DisplayName string `yaml:"display_name"`
	Department  string `yaml:"department"`
	Role        string `yaml:"role"`
	Account     string `yaml:"account"`
}

// WorkFixture is a shot or an asset; AssetType is ignored for shots.
type WorkFixture struct {
	Name      string `yaml:"name"`
	Status    string `yaml:"status"`
	AssetType string `yaml:"asset_type"`
}

// TaskFixture refers to its parent, assignee and dependencies by name.
type TaskFixture struct {
	Name       string   `yaml:"name"`
	Status     string   `yaml:"status"`
	Shot       string   `yaml:"shot"`
	Asset      string   `yaml:"asset"`
	AssignedTo string   `yaml:"assigned_to"`
	DependsOn  []string `yaml:"depends_on"`
}

// LoadFixtureFile reads and decodes a YAML fixture.
func LoadFixtureFile(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	return &f, nil
}

// Apply inserts the fixture in one transaction. It does nothing when the
// database already holds a project. Organizations and accounts that already
// exist are reused.
func Apply(db *gorm.DB, f *Fixture, log *logger.Logger) error {
	var projects int64
	if err := db.Model(&models.Project{}).Count(&projects).Error; err != nil {
		return err
	}
	if projects > 0 {
		log.Info("database already holds projects, skipping fixtures")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		orgs := map[string]uint{}
		for _, o := range f.Organizations {
			org, err := organizationByName(tx, o.Name)
			if err != nil {
				return fmt.Errorf("organization %q: %w", o.Name, err)
			}
			if o.Status != "" && o.Status != org.Status {
				org.Status = o.Status
				if err := database.Update(tx, org, "Organization"); err != nil {
					return err
				}
			}
			orgs[o.Name] = org.ID
		}

		for _, a := range f.Accounts {
			if err := applyAccount(tx, a, orgs); err != nil {
				return fmt.Errorf("account %q: %w", a.AccountName, err)
			}
		}

		for _, s := range f.StorageLocations {
			if err := applyStorageLocation(tx, s); err != nil {
				return fmt.Errorf("storage location %q: %w", s.Name, err)
			}
		}

		for _, p := range f.Projects {
			if err := applyProject(tx, p, orgs); err != nil {
				return fmt.Errorf("project %q: %w", p.Name, err)
			}
			log.Info("seeded project", "project", p.Name,
				"shots", len(p.Shots), "assets", len(p.Assets), "tasks", len(p.Tasks))
		}
		return nil
	})
}

// ApplyFile loads path and applies it.
func ApplyFile(db *gorm.DB, path string, log *logger.Logger) error {
	f, err := LoadFixtureFile(path)
	if err != nil {
		return err
	}
	return Apply(db, f, log)
}

func orgID(tx *gorm.DB, orgs map[string]uint, name string) (uint, error) {
	if id, ok := orgs[name]; ok {
		return id, nil
	}
	var org models.Organization
	if err := tx.Where("name = ?", name).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("Organization %q not found", name)
		}
		return 0, err
	}
	orgs[name] = org.ID
	return org.ID, nil
}

func applyAccount(tx *gorm.DB, a AccountFixture, orgs map[string]uint) error {
	var count int64
	if err := tx.Model(&models.Account{}).Where("account_name = ?", a.AccountName).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	accountType := models.AccountType(a.AccountType)
	if accountType == "" {
		accountType = models.AccountArtist
	}
	if !accountType.Valid() {
		return apperr.Invalid(apperr.ReasonInvalidField, "unknown account type %q", a.AccountType)
	}
	id, err := orgID(tx, orgs, a.Organization)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(a.Password)
	if err != nil {
		return err
	}
	displayName := a.DisplayName
	if displayName == "" {
		displayName = a.AccountName
	}
	acc := models.Account{
		AccountName:    a.AccountName,
		DisplayName:    displayName,
		HashedPassword: hash,
		AccountType:    accountType,
		OrganizationID: id,
	}
	return database.Insert(tx, &acc, "Account name")
}

func applyStorageLocation(tx *gorm.DB, s StorageLocationFixture) error {
	active := true
	if s.Active != nil {
		active = *s.Active
	}
	loc := models.StorageLocation{
		Name:         s.Name,
		LocationType: s.LocationType,
		BasePath:     s.BasePath,
		IsActive:     active,
	}
	return database.Insert(tx, &loc, "Storage location")
}

func applyProject(tx *gorm.DB, p ProjectFixture, orgs map[string]uint) error {
	oid, err := orgID(tx, orgs, p.Organization)
	if err != nil {
		return err
	}
	project := models.Project{Name: p.Name, Status: orDefault(p.Status, models.DefaultProjectStatus), OrganizationID: oid}
	if err := database.Insert(tx, &project, "Project"); err != nil {
		return err
	}

	members := map[string]uint{}
	for _, m := range p.Members {
		member := models.ProjectMember{
			DisplayName: m.DisplayName,
			Department:  orDefault(m.Department, models.DefaultMemberDepartment),
			Role:        orDefault(m.Role, models.DefaultMemberRole),
			ProjectID:   project.ID,
		}
		if m.Account != "" {
			var acc models.Account
			if err := tx.Where("account_name = ?", m.Account).First(&acc).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("Account %q not found", m.Account)
				}
				return err
			}
			member.AccountID = &acc.ID
		}
		if err := database.Insert(tx, &member, "Project member"); err != nil {
			return err
		}
		members[m.DisplayName] = member.ID
	}

	shots := map[string]uint{}
	for _, s := range p.Shots {
		shot := models.Shot{Name: s.Name, Status: orDefault(s.Status, models.DefaultWorkStatus), ProjectID: project.ID}
		if err := database.Insert(tx, &shot, "Shot"); err != nil {
			return err
		}
		shots[s.Name] = shot.ID
	}

	assets := map[string]uint{}
	for _, a := range p.Assets {
		asset := models.Asset{
			Name:      a.Name,
			AssetType: a.AssetType,
			Status:    orDefault(a.Status, models.DefaultWorkStatus),
			ProjectID: project.ID,
		}
		if err := database.Insert(tx, &asset, "Asset"); err != nil {
			return err
		}
		assets[a.Name] = asset.ID
	}

	tasks := map[string]uint{}
	for _, t := range p.Tasks {
		task := models.Task{Name: t.Name, Status: orDefault(t.Status, models.DefaultTaskStatus)}
		if t.Shot != "" {
			id, ok := shots[t.Shot]
			if !ok {
				return apperr.NotFound("Shot %q not found", t.Shot)
			}
			task.ShotID = &id
		}
		if t.Asset != "" {
			id, ok := assets[t.Asset]
			if !ok {
				return apperr.NotFound("Asset %q not found", t.Asset)
			}
			task.AssetID = &id
		}
		if t.AssignedTo != "" {
			id, ok := members[t.AssignedTo]
			if !ok {
				return apperr.NotFound("Project member %q not found", t.AssignedTo)
			}
			task.AssignedToID = &id
		}
		if _, err := taskgraph.Validate(tx, taskgraph.Candidate{
			ShotID: task.ShotID, AssetID: task.AssetID, AssignedToID: task.AssignedToID,
		}); err != nil {
			return fmt.Errorf("task %q: %w", t.Name, err)
		}
		if err := database.Insert(tx, &task, "Task"); err != nil {
			return err
		}
		tasks[t.Name] = task.ID
	}

	// dependencies may point forward, so they go in after every task exists
	for _, t := range p.Tasks {
		for _, dep := range t.DependsOn {
			on, ok := tasks[dep]
			if !ok {
				return apperr.NotFound("Dependency task %q not found", dep)
			}
			if err := taskgraph.AddDependency(tx, tasks[t.Name], on); err != nil {
				return fmt.Errorf("task %q: %w", t.Name, err)
			}
		}
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
