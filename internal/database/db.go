package database

import (
	"fmt"
	"time"

	"prodtrack/internal/logger"
	"prodtrack/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	maxAttempts  = 10
	retryBackoff = 2 * time.Second
)

// Open connects to postgres, retrying while the database container comes up.
func Open(dsn string, log *logger.Logger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	for i := 1; i <= maxAttempts; i++ {
		log.Info("trying to connect to DB", "attempt", i, "max_attempts", maxAttempts)

		db, err = OpenDialector(postgres.Open(dsn))
		if err == nil {
			log.Info("connected to DB successfully")
			return db, nil
		}

		log.Warn("failed to connect to DB", "error", err)
		time.Sleep(retryBackoff)
	}
	return nil, fmt.Errorf("connect to db after %d attempts: %w", maxAttempts, err)
}

// OpenDialector opens any gorm dialector with the settings the store relies on:
// unique and foreign key violations are translated into gorm sentinel errors.
func OpenDialector(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Organization{},
		&models.Account{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Shot{},
		&models.Asset{},
		&models.Task{},
		&models.TaskDependency{},
		&models.StorageLocation{},
		&models.File{},
		&models.AuditLog{},
	)
}
