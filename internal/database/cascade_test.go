package database_test

import (
	"testing"

	"prodtrack/internal/database"
	"prodtrack/internal/models"
	"prodtrack/internal/testutil"

	"gorm.io/gorm"
)

func addEdge(t *testing.T, db *gorm.DB, dependent, on uint) {
	t.Helper()
	edge := models.TaskDependency{DependentTaskID: dependent, DependencyOnTaskID: on}
	if err := database.Insert(db, &edge, "Task dependency"); err != nil {
		t.Fatalf("insert edge: %v", err)
	}
}

func seedFile(t *testing.T, db *gorm.DB, projectID uint, loc *models.StorageLocation, fileID string, shotID, assetID *uint) *models.File {
	t.Helper()
	f := &models.File{
		FileID:            fileID,
		OriginalFilename:  "plate.exr",
		RelativePath:      "plates/plate.exr",
		FullStoragePath:   loc.BasePath + "/plates/plate.exr",
		FileFormat:        "exr",
		FileType:          "plate",
		StorageLocationID: loc.ID,
		ProjectID:         projectID,
		ShotID:            shotID,
		AssetID:           assetID,
	}
	if err := database.Insert(db, f, "File"); err != nil {
		t.Fatalf("insert file: %v", err)
	}
	return f
}

func TestDeleteProjectCascades(t *testing.T) {
	db := testutil.DB(t)
	org := testutil.SeedOrganization(t, db, "Org1")
	p1 := testutil.SeedProject(t, db, org.ID, "P1")
	p2 := testutil.SeedProject(t, db, org.ID, "P2")
	loc := testutil.SeedStorageLocation(t, db, "nas", "/mnt/nas", true)

	member := testutil.SeedMember(t, db, p1.ID, nil, "Animator")
	shot := testutil.SeedShot(t, db, p1.ID, "SH001")
	asset := testutil.SeedAsset(t, db, p1.ID, "Hero")
	layout := testutil.SeedShotTask(t, db, shot.ID, "Layout", member)
	model := testutil.SeedAssetTask(t, db, asset.ID, "Model")
	addEdge(t, db, layout.ID, model.ID)
	seedFile(t, db, p1.ID, loc, "0b5e4c2e-7a53-4d39-9a3e-3c1f0a4c9e01", &shot.ID, nil)

	otherShot := testutil.SeedShot(t, db, p2.ID, "SH900")
	keep := testutil.SeedShotTask(t, db, otherShot.ID, "Keep", nil)

	if err := db.Transaction(func(tx *gorm.DB) error {
		return database.DeleteProject(tx, p1.ID)
	}); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}

	checks := []struct {
		model any
		want  int64
	}{
		{&models.Project{}, 1},
		{&models.ProjectMember{}, 0},
		{&models.Shot{}, 1},
		{&models.Asset{}, 0},
		{&models.Task{}, 1},
		{&models.TaskDependency{}, 0},
		{&models.File{}, 0},
		{&models.StorageLocation{}, 1},
	}
	for _, c := range checks {
		if n := testutil.Count(t, db, c.model); n != c.want {
			t.Fatalf("%T: want=%d got=%d", c.model, c.want, n)
		}
	}
	if n := testutil.Count(t, db, &models.Task{}, "id = ?", keep.ID); n != 1 {
		t.Fatalf("task of other project was removed")
	}
}

func TestDeleteShotKeepsFiles(t *testing.T) {
	db := testutil.DB(t)
	org := testutil.SeedOrganization(t, db, "Org1")
	p := testutil.SeedProject(t, db, org.ID, "P1")
	loc := testutil.SeedStorageLocation(t, db, "nas", "/mnt/nas", true)
	shot := testutil.SeedShot(t, db, p.ID, "SH001")
	asset := testutil.SeedAsset(t, db, p.ID, "Hero")
	anim := testutil.SeedShotTask(t, db, shot.ID, "Animate", nil)
	model := testutil.SeedAssetTask(t, db, asset.ID, "Model")
	addEdge(t, db, anim.ID, model.ID)
	f := seedFile(t, db, p.ID, loc, "6f1d8a4b-2c39-4e0a-8f7b-51d2e3a4b5c6", &shot.ID, nil)

	if err := db.Transaction(func(tx *gorm.DB) error {
		return database.DeleteShot(tx, shot.ID)
	}); err != nil {
		t.Fatalf("DeleteShot: %v", err)
	}

	if n := testutil.Count(t, db, &models.Task{}, "shot_id = ?", shot.ID); n != 0 {
		t.Fatalf("shot tasks left: %d", n)
	}
	if n := testutil.Count(t, db, &models.TaskDependency{}); n != 0 {
		t.Fatalf("edges left: %d", n)
	}
	if n := testutil.Count(t, db, &models.Task{}, "id = ?", model.ID); n != 1 {
		t.Fatalf("asset task should survive")
	}

	var got models.File
	if err := db.First(&got, f.ID).Error; err != nil {
		t.Fatalf("file removed: %v", err)
	}
	if got.ShotID != nil || got.ProjectID != p.ID {
		t.Fatalf("file link not cleared: %+v", got)
	}
}

func TestDeleteAsset(t *testing.T) {
	db := testutil.DB(t)
	org := testutil.SeedOrganization(t, db, "Org1")
	p := testutil.SeedProject(t, db, org.ID, "P1")
	asset := testutil.SeedAsset(t, db, p.ID, "Hero")
	testutil.SeedAssetTask(t, db, asset.ID, "Model")
	testutil.SeedAssetTask(t, db, asset.ID, "Rig")

	if err := database.DeleteAsset(db, asset.ID); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}
	if n := testutil.Count(t, db, &models.Task{}); n != 0 {
		t.Fatalf("tasks left: %d", n)
	}
	if n := testutil.Count(t, db, &models.Asset{}); n != 0 {
		t.Fatalf("asset left: %d", n)
	}
}

func TestDeleteMemberUnassignsTasks(t *testing.T) {
	db := testutil.DB(t)
	org := testutil.SeedOrganization(t, db, "Org1")
	p := testutil.SeedProject(t, db, org.ID, "P1")
	member := testutil.SeedMember(t, db, p.ID, nil, "Animator")
	shot := testutil.SeedShot(t, db, p.ID, "SH001")
	task := testutil.SeedShotTask(t, db, shot.ID, "Animate", member)

	if err := database.DeleteMember(db, member.ID); err != nil {
		t.Fatalf("DeleteMember: %v", err)
	}

	var got models.Task
	if err := db.First(&got, task.ID).Error; err != nil {
		t.Fatalf("task removed: %v", err)
	}
	if got.AssignedToID != nil {
		t.Fatalf("task still assigned to %d", *got.AssignedToID)
	}
}

func TestProjectTaskIDs(t *testing.T) {
	db := testutil.DB(t)
	org := testutil.SeedOrganization(t, db, "Org1")
	p1 := testutil.SeedProject(t, db, org.ID, "P1")
	p2 := testutil.SeedProject(t, db, org.ID, "P2")
	a := testutil.SeedShotTask(t, db, testutil.SeedShot(t, db, p1.ID, "SH001").ID, "A", nil)
	b := testutil.SeedAssetTask(t, db, testutil.SeedAsset(t, db, p1.ID, "Hero").ID, "B")
	testutil.SeedShotTask(t, db, testutil.SeedShot(t, db, p2.ID, "SH002").ID, "C", nil)

	ids, err := database.ProjectTaskIDs(db, p1.ID)
	if err != nil {
		t.Fatalf("ProjectTaskIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != a.ID || ids[1] != b.ID {
		t.Fatalf("ids: got %v", ids)
	}
}
