package database

import (
	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/utils"
	"gorm.io/gorm"
)

// Migrate membuat / memperbarui seluruh tabel domain.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Table{},
		&models.MenuItem{},
		&models.Employee{},
		&models.Order{},
		&models.OrderItem{},
		&models.Reservation{},
		&models.Feedback{},
	)
	if err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
