package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// NewSQLiteDB открывает SQLite базу (файл или ":memory:"-DSN) для локальной разработки и тестов.
// SQLite не допускает параллельной записи, поэтому пул ограничен одним соединением.
func NewSQLiteDB(dsn string, logLevel string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(logLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// AutoMigrateSQLite создает схему по gorm-тегам сущностей
func AutoMigrateSQLite(db *gorm.DB) error {
	log.Println("Применяем AutoMigrate для SQLite...")
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Quiz{},
		&entity.Question{},
		&entity.Option{},
		&entity.Attempt{},
		&entity.Result{},
	); err != nil {
		return fmt.Errorf("sqlite automigrate failed: %w", err)
	}
	return nil
}
