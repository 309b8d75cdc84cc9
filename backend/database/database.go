package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/config"
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/models"
)

// InitDB opens the backing store and runs migrations. Postgres in
// production; sqlite (DB_DRIVER=sqlite, DB_NAME=:memory:) for tests and
// local runs. TranslateError is on so unique-index violations surface as
// gorm.ErrDuplicatedKey on both drivers.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBName)
	default:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database instance: %w", err)
	}
	if cfg.DBDriver == "sqlite" {
		// a single connection keeps :memory: databases from forking
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
	}

	if err := runMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

func runMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.CourseModule{},
		&models.ModuleItem{},
		&models.Cohort{},
		&models.CourseCohort{},
		&models.Enrollment{},
		&models.QuizAttempt{},
		&models.AssignmentSubmission{},
		&models.ProgressRecord{},
	)
}
