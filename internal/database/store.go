package database

import (
	"errors"
	"fmt"

	"prodtrack/internal/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Insert creates row without touching its associations. A unique constraint
// violation surfaces as a Conflict naming what.
func Insert(tx *gorm.DB, row any, what string) error {
	if err := tx.Omit(clause.Associations).Create(row).Error; err != nil {
		return translate(err, what)
	}
	return nil
}

// Update saves every column of row, associations excluded.
func Update(tx *gorm.DB, row any, what string) error {
	if err := tx.Omit(clause.Associations).Save(row).Error; err != nil {
		return translate(err, what)
	}
	return nil
}

// Find loads the row of type T with the given primary key.
func Find[T any](tx *gorm.DB, id uint, what string) (*T, error) {
	var row T
	if err := tx.First(&row, id).Error; err != nil {
		return nil, translate(err, what)
	}
	return &row, nil
}

// EnsureUnique fails with Conflict when a row of model already has column = value.
// excludeID skips the row being updated; pass 0 on insert.
func EnsureUnique(tx *gorm.DB, model any, column string, value any, excludeID uint, what string) error {
	q := tx.Model(model).Where(fmt.Sprintf("%s = ?", column), value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("%s already exists", what)
	}
	return nil
}

// Exists reports whether a row of model with the given primary key exists.
func Exists(tx *gorm.DB, model any, id uint) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func translate(err error, what string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("%s not found", what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict("%s already exists", what)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.NotFound("%s references a missing record", what)
	default:
		return err
	}
}
