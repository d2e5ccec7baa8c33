package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-manager/config"
	"github.com/yeremiapane/restaurant-manager/database"
	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/router"
	"github.com/yeremiapane/restaurant-manager/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	adminUser     = "admin"
	adminPassword = "s3cret-pass"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	DB     *gorm.DB
	Router *gin.Engine
}

// setupTestDB -> SQLite in-memory unik per test
func setupTestDB(t *testing.T) *gorm.DB {
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

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Auth.AdminUsername = adminUser
	cfg.Auth.AdminPasswordHash = string(hash)
	cfg.Auth.JWTSecret = "controllers-test-secret"
	cfg.Auth.TokenTTL = time.Hour
	return cfg
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitLogger("error")

	db := setupTestDB(t)
	r := router.SetupRouter(db, router.Dependencies{Config: testConfig(t)})
	return &testServer{t: t, DB: db, Router: r}
}

func (s *testServer) request(method, path string, body interface{}, header map[string]string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

// public -> tanpa credential
func (s *testServer) public(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	return s.request(method, path, body, nil)
}

// admin -> HTTP Basic dengan credential admin
func (s *testServer) admin(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	req := httptest.NewRequest(method, "/", nil)
	req.SetBasicAuth(adminUser, adminPassword)
	return s.request(method, path, body, map[string]string{"Authorization": req.Header.Get("Authorization")})
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out), "data: %s", string(env.Data))
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

func seedTable(t *testing.T, db *gorm.DB, number int) models.Table {
	t.Helper()
	table := models.Table{TableNumber: number, Capacity: 4, Location: "hall", IsAvailable: true}
	require.NoError(t, db.Create(&table).Error)
	return table
}

func seedMenuItem(t *testing.T, db *gorm.DB, name, price string) models.MenuItem {
	t.Helper()
	item := models.MenuItem{Name: name, Category: "main", Price: decimal.RequireFromString(price), CookingTime: 10, IsAvailable: true}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func seedEmployee(t *testing.T, db *gorm.DB) models.Employee {
	t.Helper()
	hired, _ := utils.ParseDate("2021-03-01")
	emp := models.Employee{
		FirstName: "Taras",
		LastName:  "Bondar",
		Position:  models.PositionWaiter,
		Email:     uuid.NewString() + "@restaurant.test",
		HireDate:  hired,
		Salary:    decimal.RequireFromString("1000"),
		IsActive:  true,
	}
	require.NoError(t, db.Create(&emp).Error)
	return emp
}

// futureDate -> tanggal N hari dari sekarang, YYYY-MM-DD
func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(utils.DateLayout)
}
