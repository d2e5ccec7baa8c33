package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-manager/config"
	"github.com/yeremiapane/restaurant-manager/database"
	"github.com/yeremiapane/restaurant-manager/kds"
	"github.com/yeremiapane/restaurant-manager/router"
	"github.com/yeremiapane/restaurant-manager/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	utils.InitLogger("error")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// TestEndToEndIntegration menguji flow utama:
// 0. Seed meja, menu, karyawan lalu login -> token
// 1. Tamu booking meja, booking kedua di slot yang sama ditolak
// 2. Staf membuat order + item, total mengikuti item
// 3. Order dibayar, tamu memberi feedback, admin mempublikasikan
func TestEndToEndIntegration(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, database.Seed(db))
	r := router.SetupRouter(db, router.Dependencies{Config: integrationConfig(t)})
	srv := httptest.NewServer(r)
	defer srv.Close()

	token := loginTest(t, srv.URL)

	// layar staf ikut mendengarkan event
	ws := dialKDS(t, srv.URL, token)
	defer ws.Close()

	tableID := firstID(t, srv.URL+"/tables")
	menuID := firstID(t, srv.URL+"/menu/available")
	employeeID := firstID(t, srv.URL+"/employees")

	// 1. reservasi
	date := time.Now().UTC().AddDate(0, 0, 10).Format(utils.DateLayout)
	booking := map[string]interface{}{
		"customer_name":    "Andriy",
		"customer_phone":   "+380931112233",
		"reservation_date": date,
		"reservation_time": "19:00",
		"table_id":         tableID,
		"number_of_guests": 2,
	}
	code, _ := call(t, http.MethodPost, srv.URL+"/reservations", "", booking)
	require.Equal(t, http.StatusCreated, code)

	booking["reservation_time"] = "20:00"
	code, _ = call(t, http.MethodPost, srv.URL+"/reservations", "", booking)
	require.Equal(t, http.StatusConflict, code)

	// 2. order
	code, resp := call(t, http.MethodPost, srv.URL+"/orders", token, map[string]interface{}{
		"table_id":    tableID,
		"employee_id": employeeID,
		"items":       []map[string]interface{}{{"menu_item_id": menuID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var order struct {
		ID          uint            `json:"id"`
		TotalAmount decimal.Decimal `json:"total_amount"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &order))
	assert.True(t, order.TotalAmount.IsPositive())

	assert.True(t, waitForEvent(t, ws, kds.EventOrderCreate))

	first := order.TotalAmount
	code, resp = call(t, http.MethodPost, fmt.Sprintf("%s/orders/%d/items", srv.URL, order.ID), token, map[string]interface{}{
		"items": []map[string]interface{}{{"menu_item_id": menuID, "quantity": 1, "subtotal": "1.00"}},
	})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	require.NoError(t, json.Unmarshal(resp.Data, &order))
	assert.True(t, first.Add(decimal.NewFromInt(1)).Equal(order.TotalAmount))

	// 3. bayar + feedback
	code, _ = call(t, http.MethodPut, fmt.Sprintf("%s/orders/%d/status", srv.URL, order.ID), token, map[string]string{"status": "paid"})
	require.Equal(t, http.StatusOK, code)

	code, resp = call(t, http.MethodPost, srv.URL+"/feedback", "", map[string]interface{}{
		"customer_name": "Andriy",
		"order_id":      order.ID,
		"rating":        5,
	})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var fb struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &fb))

	code, _ = call(t, http.MethodPut, fmt.Sprintf("%s/feedback/%d/toggle", srv.URL, fb.ID), token, nil)
	require.Equal(t, http.StatusOK, code)

	code, resp = call(t, http.MethodGet, srv.URL+"/feedback/published", "", nil)
	require.Equal(t, http.StatusOK, code)
	var published []json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Data, &published))
	assert.Len(t, published, 1)
}

func TestWebSocketRequiresToken(t *testing.T) {
	db := setupTestDB(t)
	r := router.SetupRouter(db, router.Dependencies{Config: integrationConfig(t)})
	srv := httptest.NewServer(r)
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// setupTestDB -> migrasi model di SQLite in-memory
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:integration_%s?mode=memory&cache=shared&_foreign_keys=on", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func integrationConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("integration"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Auth.AdminPasswordHash = string(hash)
	cfg.Auth.JWTSecret = "integration-secret"
	return cfg
}

func loginTest(t *testing.T, baseURL string) string {
	t.Helper()
	code, resp := call(t, http.MethodPost, baseURL+"/auth/login", "", map[string]string{
		"username": "admin",
		"password": "integration",
	})
	require.Equal(t, http.StatusOK, code, resp.Message)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func dialKDS(t *testing.T, baseURL, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(baseURL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return kds.ClientCount() > 0 }, time.Second, 10*time.Millisecond)
	return conn
}

// waitForEvent membaca pesan sampai event yang dicari muncul
func waitForEvent(t *testing.T, conn *websocket.Conn, want string) bool {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return false
		}
		var msg kds.Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		if msg.Event == want {
			return true
		}
	}
}

func firstID(t *testing.T, url string) uint {
	t.Helper()
	code, resp := call(t, http.MethodGet, url, "", nil)
	require.Equal(t, http.StatusOK, code)
	var rows []struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &rows))
	require.NotEmpty(t, rows, url)
	return rows[0].ID
}

func call(t *testing.T, method, url, token string, body interface{}) (int, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var out apiResponse
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res.StatusCode, out
}
