package taskgraph

import (
	"prodtrack/internal/apperr"
	"prodtrack/internal/database"
	"prodtrack/internal/models"

	"gorm.io/gorm"
)

// AddDependency inserts the edge dependent -> dependencyOn.
// A repeated edge is rejected with Conflict(duplicate_edge), never silently ignored.
func AddDependency(tx *gorm.DB, dependentID, dependencyOnID uint) error {
	if dependentID == dependencyOnID {
		return apperr.Invalid(apperr.ReasonSelfDependency, "A task cannot depend on itself.")
	}

	ok, err := database.Exists(tx, &models.Task{}, dependentID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("Task not found")
	}
	ok, err = database.Exists(tx, &models.Task{}, dependencyOnID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("Dependency task not found")
	}

	var count int64
	if err := tx.Model(&models.TaskDependency{}).
		Where("dependent_task_id = ? AND dependency_on_task_id = ?", dependentID, dependencyOnID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return duplicateEdge()
	}

	edge := models.TaskDependency{DependentTaskID: dependentID, DependencyOnTaskID: dependencyOnID}
	if err := database.Insert(tx, &edge, "Task dependency"); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return duplicateEdge()
		}
		return err
	}
	return nil
}

// RemoveDependency deletes the edge; NotFound when it does not exist.
func RemoveDependency(tx *gorm.DB, dependentID, dependencyOnID uint) error {
	res := tx.Where("dependent_task_id = ? AND dependency_on_task_id = ?", dependentID, dependencyOnID).
		Delete(&models.TaskDependency{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Task dependency not found")
	}
	return nil
}

// DependsOn lists the tasks taskID waits on.
func DependsOn(tx *gorm.DB, taskID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := tx.Where("id IN (?)",
		tx.Model(&models.TaskDependency{}).Select("dependency_on_task_id").Where("dependent_task_id = ?", taskID),
	).Order("id asc").Find(&tasks).Error
	return tasks, err
}

// DependencyFor lists the tasks waiting on taskID.
func DependencyFor(tx *gorm.DB, taskID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := tx.Where("id IN (?)",
		tx.Model(&models.TaskDependency{}).Select("dependent_task_id").Where("dependency_on_task_id = ?", taskID),
	).Order("id asc").Find(&tasks).Error
	return tasks, err
}

func duplicateEdge() error {
	return apperr.Conflict("Task dependency already exists").WithReason(apperr.ReasonDuplicateEdge)
}
