package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-manager/database"
	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB -> sqlite in-memory dengan nama unik per test, foreign key aktif
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func moneyPtr(s string) *decimal.Decimal {
	d := money(s)
	return &d
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, money(want).Equal(got), "want %s, got %s", want, got.String())
}

func seedTable(t *testing.T, db *gorm.DB, number int) models.Table {
	t.Helper()
	table := models.Table{TableNumber: number, Capacity: 4, Location: "hall", IsAvailable: true}
	require.NoError(t, db.Create(&table).Error)
	return table
}

func seedEmployee(t *testing.T, db *gorm.DB) models.Employee {
	t.Helper()
	hired, _ := utils.ParseDate("2020-01-15")
	emp := models.Employee{
		FirstName: "Olena",
		LastName:  "Koval",
		Position:  models.PositionWaiter,
		Email:     uuid.NewString() + "@restaurant.test",
		HireDate:  hired,
		Salary:    money("1200"),
		IsActive:  true,
	}
	require.NoError(t, db.Create(&emp).Error)
	return emp
}

func seedMenuItem(t *testing.T, db *gorm.DB, name, price string) models.MenuItem {
	t.Helper()
	item := models.MenuItem{Name: name, Category: "main", Price: money(price), CookingTime: 15, IsAvailable: true}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func seedOrder(t *testing.T, db *gorm.DB) models.Order {
	t.Helper()
	table := seedTable(t, db, int(uuid.New().ID()%100000))
	emp := seedEmployee(t, db)
	date, _ := utils.ParseDate("2030-05-01")
	at, _ := utils.ParseClock("18:30")

	order := models.Order{
		TableID:     table.ID,
		EmployeeID:  emp.ID,
		OrderDate:   date,
		OrderTime:   at,
		Status:      models.OrderStatusNew,
		TotalAmount: decimal.Zero,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}
