// Package store provides database connection management for userhub
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/userhub/userhub/pkg/accounts"
	"github.com/userhub/userhub/pkg/config"
	"github.com/userhub/userhub/pkg/records"
)

// Open connects to the configured database, migrates the schema and returns
// the handle. The initial open is retried since the backing volume may not be
// ready when the process starts.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.Type != "sqlite" {
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	var db *gorm.DB

	err := retry.Do(
		func() error {
			var err error
			db, err = open(cfg)
			return err
		},
		retry.Attempts(5),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&accounts.Account{}, &records.User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// TranslateError maps driver errors onto gorm sentinels so the
	// repositories can match on a closed set of outcomes.
	return gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
}

// HealthCheck pings the underlying database connection
func HealthCheck(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
