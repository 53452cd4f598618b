package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/samxiao0/campus-cron/config"
	"github.com/samxiao0/campus-cron/models"
)

// Connect opens postgres and migrates the state table.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.AppEnv == "dev" {
		level = logger.Info
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// ----- AutoMigrate -----
	if err := db.AutoMigrate(&models.AppState{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	log.Printf("[migrate] app_states ready")
	return db, nil
}

// Open returns the key-value store selected by cfg.Storage.
func Open(cfg *config.Config) (KVStore, error) {
	switch cfg.Storage {
	case "memory":
		log.Printf("[store] using in-memory storage, data is lost on exit")
		return NewMemoryStore(), nil
	case "postgres", "":
		db, err := Connect(cfg)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(db), nil
	default:
		return nil, fmt.Errorf("unknown STORAGE %q", cfg.Storage)
	}
}
