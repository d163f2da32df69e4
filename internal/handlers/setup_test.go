package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"sonakshi-pos/internal/database"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter gives each test a fresh SQLite store and a router with
// the API mounted behind a stub session (userID=1, role=admin).
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "pos.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	database.DB = db

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", uint(1))
		c.Set("role", "admin")
		c.Next()
	})

	api := r.Group("/api")
	{
		api.GET("/items", GetItems)
		api.GET("/items/:id", GetItem)
		api.GET("/items/scan/:barcode", ScanItem)
		api.POST("/items", AddItem)
		api.PUT("/items/:id", UpdateItem)
		api.DELETE("/items/:id", DeleteItem)
		api.POST("/items/generate-barcode", GenerateBarcode)
		api.POST("/items/generate-sku", GenerateSKU)

		api.POST("/checkout", Checkout)
		api.GET("/sales", GetSales)
		api.GET("/sales/:id", GetSale)
		api.DELETE("/sales/:id", DeleteSale)

		api.POST("/stock/adjust", AdjustStock)
		api.GET("/stock/movements", GetStockMovements)

		api.GET("/reports/dashboard", GetDashboard)
		api.GET("/reports/valuation", GetStockValuation)
	}

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}

func statusOK(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Code != http.StatusOK && w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 2xx (body: %s)", w.Code, w.Body.String())
	}
}
