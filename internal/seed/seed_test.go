package seed

import (
	"testing"

	"prodtrack/internal/apperr"
	"prodtrack/internal/auth"
	"prodtrack/internal/models"
	"prodtrack/internal/testutil"
)

var demoBootstrap = Bootstrap{AccountName: "admin_user", Password: "password_admin", Organization: "Default Org"}

func TestEnsureBootstrapCreatesAdminOnce(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)

	for i := 0; i < 2; i++ {
		if err := EnsureBootstrap(db, demoBootstrap, log); err != nil {
			t.Fatalf("EnsureBootstrap #%d: %v", i+1, err)
		}
	}

	if n := testutil.Count(t, db, &models.Account{}); n != 1 {
		t.Fatalf("accounts: want=1 got=%d", n)
	}
	if n := testutil.Count(t, db, &models.Organization{}); n != 1 {
		t.Fatalf("organizations: want=1 got=%d", n)
	}

	var admin models.Account
	if err := db.Where("account_name = ?", "admin_user").First(&admin).Error; err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if admin.AccountType != models.AccountAdmin {
		t.Fatalf("account type: got %q", admin.AccountType)
	}
	if !auth.VerifyPassword("password_admin", admin.HashedPassword) {
		t.Fatalf("bootstrap password does not verify")
	}
}

func TestEnsureBootstrapReusesOrganization(t *testing.T) {
	db := testutil.DB(t)
	org := testutil.SeedOrganization(t, db, "Default Org")

	if err := EnsureBootstrap(db, demoBootstrap, testutil.Logger(t)); err != nil {
		t.Fatalf("EnsureBootstrap: %v", err)
	}
	var admin models.Account
	if err := db.Where("account_name = ?", "admin_user").First(&admin).Error; err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if admin.OrganizationID != org.ID {
		t.Fatalf("organization: want=%d got=%d", org.ID, admin.OrganizationID)
	}
}

func TestEnsureBootstrapRequiresValues(t *testing.T) {
	db := testutil.DB(t)
	if err := EnsureBootstrap(db, Bootstrap{AccountName: "admin"}, testutil.Logger(t)); err == nil {
		t.Fatalf("expected error for incomplete bootstrap config")
	}
}

func TestApplyDemoFixture(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	if err := EnsureBootstrap(db, demoBootstrap, log); err != nil {
		t.Fatalf("EnsureBootstrap: %v", err)
	}
	if err := ApplyFile(db, "testdata/demo.yaml", log); err != nil {
		t.Fatalf("ApplyFile: %v", err)
	}

	counts := []struct {
		model any
		want  int64
	}{
		{&models.Organization{}, 1},
		{&models.Account{}, 2},
		{&models.Project{}, 1},
		{&models.ProjectMember{}, 2},
		{&models.Shot{}, 1},
		{&models.Asset{}, 1},
		{&models.Task{}, 2},
		{&models.TaskDependency{}, 1},
		{&models.StorageLocation{}, 2},
	}
	for _, c := range counts {
		if n := testutil.Count(t, db, c.model); n != c.want {
			t.Fatalf("%T: want=%d got=%d", c.model, c.want, n)
		}
	}

	var animator models.ProjectMember
	if err := db.Where("display_name = ?", "Animator 1").First(&animator).Error; err != nil {
		t.Fatalf("load animator: %v", err)
	}
	if animator.AccountID != nil || animator.Department != "Animation" {
		t.Fatalf("animator slot: %+v", animator)
	}
	if n := testutil.Count(t, db, &models.Task{}, "assigned_to_id = ?", animator.ID); n != 2 {
		t.Fatalf("tasks assigned to animator: want=2 got=%d", n)
	}
	if n := testutil.Count(t, db, &models.StorageLocation{}, "is_active = ?", false); n != 1 {
		t.Fatalf("inactive storage locations: want=1 got=%d", n)
	}

	// second run is a no-op
	if err := ApplyFile(db, "testdata/demo.yaml", log); err != nil {
		t.Fatalf("ApplyFile again: %v", err)
	}
	if n := testutil.Count(t, db, &models.Project{}); n != 1 {
		t.Fatalf("projects after rerun: want=1 got=%d", n)
	}
}

func TestApplyRollsBackOnBadTask(t *testing.T) {
	db := testutil.DB(t)
	f := &Fixture{
		Organizations: []OrganizationFixture{{Name: "Org1"}},
		Projects: []ProjectFixture{{
			Name:         "P1",
			Organization: "Org1",
			Shots:        []WorkFixture{{Name: "SH001"}},
			Assets:       []WorkFixture{{Name: "Hero", AssetType: "character"}},
			Tasks:        []TaskFixture{{Name: "Confused", Shot: "SH001", Asset: "Hero"}},
		}},
	}

	err := Apply(db, f, testutil.Logger(t))
	if !apperr.Is(err, apperr.KindValidationFailed) || apperr.ReasonOf(err) != apperr.ReasonTaskParent {
		t.Fatalf("want ValidationFailed(task_parent), got %v", err)
	}
	if n := testutil.Count(t, db, &models.Project{}); n != 0 {
		t.Fatalf("projects after rollback: want=0 got=%d", n)
	}
	if n := testutil.Count(t, db, &models.Organization{}); n != 0 {
		t.Fatalf("organizations after rollback: want=0 got=%d", n)
	}
}
