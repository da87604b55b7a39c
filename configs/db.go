package configs

import (
	"fmt"

	"qrmenu/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionDB เปิด DB ตาม driver ที่ตั้งไว้ใน config
func ConnectionDB(driver, source string, gormLog logger.Interface) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "":
		dialector = sqlite.Open(source)
	case "postgres":
		dialector = postgres.Open(source)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	if gormLog == nil {
		gormLog = logger.Default.LogMode(logger.Warn)
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if driver != "postgres" {
		// sqlite ปิด foreign key ไว้เป็นค่าเริ่มต้น
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}
	return db, nil
}

func SetupDatabase(db *gorm.DB) error {
	// Migrate the schema
	return db.AutoMigrate(
		&entity.User{},
		&entity.Profile{}, &entity.Subscription{}, &entity.Payment{},
		&entity.Category{}, &entity.ItemType{}, &entity.Tag{},
		&entity.Menu{}, &entity.Item{}, &entity.ItemTranslation{},
		&entity.Feedback{},
		&entity.SupportTicket{},
	)
}
