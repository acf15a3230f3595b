package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/quiz-api/internal/config"
)

// Open открывает базу согласно cfg.Driver и применяет миграции
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := NewPostgresDB(cfg.PostgresConnectionString(), cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		if err := MigratePostgres(db); err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverSQLite:
		db, err := NewSQLiteDB(cfg.Path, cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		if err := AutoMigrateSQLite(db); err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

// Close закрывает пул соединений
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}

func gormConfig(logLevel string) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(parseLogLevel(logLevel)),
		TranslateError: true,
	}
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
