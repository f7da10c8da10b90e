package database

import (
	"log"

	"bascula-backend/internal/config"
	"bascula-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.Product{},
		&models.SystemConfig{},
		&models.TicketCounter{},
		&models.Report{},
		&models.ReportItem{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connection established, migration complete.")
}
