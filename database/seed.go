package database

import (
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/utils"
	"gorm.io/gorm"
)

// Seed mengisi data contoh bila belum ada meja sama sekali.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Table{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		utils.InfoLogger.Println("Seed skipped, data already present")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		tables := []models.Table{
			{TableNumber: 1, Capacity: 2, Location: "window", IsAvailable: true},
			{TableNumber: 2, Capacity: 2, Location: "window", IsAvailable: true},
			{TableNumber: 3, Capacity: 4, Location: "hall", IsAvailable: true},
			{TableNumber: 4, Capacity: 4, Location: "hall", IsAvailable: true},
			{TableNumber: 5, Capacity: 6, Location: "terrace", IsAvailable: true},
			{TableNumber: 6, Capacity: 8, Location: "vip", IsAvailable: true},
		}
		if err := tx.Create(&tables).Error; err != nil {
			return err
		}

		menu := []models.MenuItem{
			{Name: "Borscht", Category: "soups", Description: "Beetroot soup with sour cream", Price: decimal.RequireFromString("8.50"), CookingTime: 15, IsAvailable: true},
			{Name: "Varenyky", Category: "mains", Description: "Dumplings with potato", Price: decimal.RequireFromString("9.00"), CookingTime: 20, IsAvailable: true},
			{Name: "Chicken Kyiv", Category: "mains", Description: "Breaded chicken with herb butter", Price: decimal.RequireFromString("14.00"), CookingTime: 25, IsAvailable: true},
			{Name: "Syrnyky", Category: "desserts", Description: "Cottage cheese pancakes", Price: decimal.RequireFromString("6.50"), CookingTime: 10, IsAvailable: true},
			{Name: "Uzvar", Category: "drinks", Description: "Dried fruit compote", Price: decimal.RequireFromString("3.00"), CookingTime: 0, IsAvailable: true},
		}
		if err := tx.Create(&menu).Error; err != nil {
			return err
		}

		hired := utils.Today()
		employees := []models.Employee{
			{FirstName: "Iryna", LastName: "Bondar", Position: models.PositionManager, Phone: "+380501110001", Email: "manager@restaurant.local", HireDate: hired, Salary: decimal.RequireFromString("2500"), IsActive: true},
			{FirstName: "Taras", LastName: "Melnyk", Position: models.PositionCook, Phone: "+380501110002", Email: "cook@restaurant.local", HireDate: hired, Salary: decimal.RequireFromString("1800"), IsActive: true},
			{FirstName: "Oksana", LastName: "Shevchuk", Position: models.PositionWaiter, Phone: "+380501110003", Email: "waiter@restaurant.local", HireDate: hired, Salary: decimal.RequireFromString("1200"), IsActive: true},
		}
		if err := tx.Create(&employees).Error; err != nil {
			return err
		}

		utils.InfoLogger.Printf("Seeded %d tables, %d menu items, %d employees", len(tables), len(menu), len(employees))
		return nil
	})
}
