package database

import (
	"prodtrack/internal/models"

	"gorm.io/gorm"
)

// DeleteTasks removes tasks together with every dependency edge touching them.
func DeleteTasks(tx *gorm.DB, taskIDs []uint) error {
	if len(taskIDs) == 0 {
		return nil
	}
	if err := tx.Where("dependent_task_id IN ? OR dependency_on_task_id IN ?", taskIDs, taskIDs).
		Delete(&models.TaskDependency{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", taskIDs).Delete(&models.Task{}).Error
}

// DeleteShot drops the shot and its tasks. Files stay with the project.
func DeleteShot(tx *gorm.DB, shotID uint) error {
	var taskIDs []uint
	if err := tx.Model(&models.Task{}).Where("shot_id = ?", shotID).Pluck("id", &taskIDs).Error; err != nil {
		return err
	}
	if err := DeleteTasks(tx, taskIDs); err != nil {
		return err
	}
	if err := tx.Model(&models.File{}).Where("shot_id = ?", shotID).Update("shot_id", nil).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", shotID).Delete(&models.Shot{}).Error
}

// DeleteAsset drops the asset and its tasks. Files stay with the project.
func DeleteAsset(tx *gorm.DB, assetID uint) error {
	var taskIDs []uint
	if err := tx.Model(&models.Task{}).Where("asset_id = ?", assetID).Pluck("id", &taskIDs).Error; err != nil {
		return err
	}
	if err := DeleteTasks(tx, taskIDs); err != nil {
		return err
	}
	if err := tx.Model(&models.File{}).Where("asset_id = ?", assetID).Update("asset_id", nil).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", assetID).Delete(&models.Asset{}).Error
}

// DeleteMember frees the role slot; tasks assigned to it become unassigned.
func DeleteMember(tx *gorm.DB, memberID uint) error {
	if err := tx.Model(&models.Task{}).Where("assigned_to_id = ?", memberID).Update("assigned_to_id", nil).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", memberID).Delete(&models.ProjectMember{}).Error
}

// DeleteProject removes the project and everything it owns.
func DeleteProject(tx *gorm.DB, projectID uint) error {
	taskIDs, err := ProjectTaskIDs(tx, projectID)
	if err != nil {
		return err
	}
	if err := DeleteTasks(tx, taskIDs); err != nil {
		return err
	}

	steps := []any{&models.File{}, &models.Shot{}, &models.Asset{}, &models.ProjectMember{}}
	for _, model := range steps {
		if err := tx.Where("project_id = ?", projectID).Delete(model).Error; err != nil {
			return err
		}
	}
	return tx.Where("id = ?", projectID).Delete(&models.Project{}).Error
}

// ProjectTaskIDs lists the ids of tasks whose shot or asset lives in the project.
func ProjectTaskIDs(tx *gorm.DB, projectID uint) ([]uint, error) {
	var ids []uint
	err := tx.Model(&models.Task{}).
		Where("shot_id IN (?) OR asset_id IN (?)",
			tx.Model(&models.Shot{}).Select("id").Where("project_id = ?", projectID),
			tx.Model(&models.Asset{}).Select("id").Where("project_id = ?", projectID),
		).
		Order("id asc").
		Pluck("id", &ids).Error
	return ids, err
}
