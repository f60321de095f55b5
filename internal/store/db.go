package store

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/souk-intel/service-bestsellers/internal/models"
)

// Open connects to the sqlite dataset file and migrates the schema
func Open(path string, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset store: %w", err)
	}

	if err := db.AutoMigrate(&models.ListingImport{}, &models.ListingRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate dataset store: %w", err)
	}

	logger.Info("Dataset store ready", zap.String("path", path))
	return db, nil
}
