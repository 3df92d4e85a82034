package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/playlistx/photoboothbackend/models"
)

// InitGormDB initializes and returns a GORM database instance
func InitGormDB(dataSourceName string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database using GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}

	// single kiosk process, single writer; WAL keeps readers cheap
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Printf("warning: failed to set WAL mode: %v", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("GORM Database initialized successfully at", dataSourceName)
	return db, nil
}

// legacyColumnDefaults lists columns that were added to photo_results after
// the first kiosks shipped. A database created by an older build is missing
// them; they are added in place with safe defaults. The table is never
// dropped: prior sessions must survive an upgrade.
var legacyColumnDefaults = map[string]string{
	"selected_theme": "''",
	"user_info":      "'{}'",
	"updated_at":     "''",
}

// MigrateSchema brings the database file up to the current schema. All
// changes are additive and guarded by existence checks.
func MigrateSchema(db *gorm.DB) error {
	migrator := db.Migrator()

	if migrator.HasTable(&models.PhotoResult{}) {
		for column, defaultVal := range legacyColumnDefaults {
			if migrator.HasColumn(&models.PhotoResult{}, column) {
				continue
			}
			stmt := fmt.Sprintf("ALTER TABLE photo_results ADD COLUMN %s TEXT NOT NULL DEFAULT %s", column, defaultVal)
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to add missing column %s: %w", column, err)
			}
			log.Printf("database: added missing column photo_results.%s", column)
		}
	}

	err := db.AutoMigrate(
		&models.PhotoResult{},
		&models.Submission{},
	)
	if err != nil {
		return fmt.Errorf("GORM AutoMigrate failed: %w", err)
	}
	log.Println("database: schema migration completed")
	return nil
}
