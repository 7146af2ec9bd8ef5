package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/planhub-dev/planhub/internal/config"
	"github.com/planhub-dev/planhub/internal/models"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})

	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()

	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return gormDB, nil
}

func Migrate(gormDB *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Project{},
		&models.Notification{},
		&models.NotificationSettings{},
	}

	migrator := gormDB.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := gormDB.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}
