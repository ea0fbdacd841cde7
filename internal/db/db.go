package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

// NewDB opens the postgres document database and migrates its table.
func NewDB(url string, production bool) (*gorm.DB, error) {
	level := logger.Info
	if production {
		level = logger.Warn
	}

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(&models.DocumentRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	// Filters on data fields use the jsonb containment operators.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_documents_data ON documents USING GIN (data)`).Error; err != nil {
		return nil, fmt.Errorf("failed to index documents: %w", err)
	}

	return db, nil
}
