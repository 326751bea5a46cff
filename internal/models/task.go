package models

import "time"

const DefaultTaskStatus = "todo"

// Task hangs off exactly one Shot or one Asset.
type Task struct {
	ID        uint       `gorm:"primaryKey"`
	Name      string     `gorm:"size:255;not null"`
	Status    string     `gorm:"size:50;not null;default:todo"`
	StartDate *time.Time `gorm:"type:date"`
	EndDate   *time.Time `gorm:"type:date"`

	AssignedToID *uint `gorm:"index"`
	AssignedTo   *ProjectMember

	ShotID  *uint `gorm:"index"`
	AssetID *uint `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskDependency is the edge "DependentTask waits on DependencyOnTask".
// The composite primary key keeps edges unique.
type TaskDependency struct {
	DependentTaskID    uint `gorm:"primaryKey;autoIncrement:false"`
	DependencyOnTaskID uint `gorm:"primaryKey;autoIncrement:false;index"`

	DependentTask    *Task `gorm:"foreignKey:DependentTaskID"`
	DependencyOnTask *Task `gorm:"foreignKey:DependencyOnTaskID"`

	CreatedAt time.Time
}
