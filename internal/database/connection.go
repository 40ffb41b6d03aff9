package database

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thereayou/rythmrun/internal/models"
)

// Connect открывает Postgres по DSN и прогоняет AutoMigrate
func Connect(dsn string) (*Database, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	return Open(postgres.Open(dsn), logger.Warn)
}

// Open работает с любым диалектом gorm; TranslateError нужен, чтобы
// нарушения уникальности приходили как gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector, level logger.LogLevel) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return NewDatabase(db), nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.FriendRequest{},
		&models.Activity{},
		&models.Location{},
		&models.Comment{},
		&models.Like{},
	)
}
