package utils

import (
	"fmt"

	"examportal/backend/config"
	"examportal/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs AutoMigrate for every model. Tests call it directly
// against their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Batch{},
		&models.Faculty{},
		&models.Student{},
		&models.Score{},
		&models.Test{},
		&models.TestQuestion{},
		&models.TestAnswer{},
		&models.Submission{},
		&models.SubmittedAnswer{},
	)
}
