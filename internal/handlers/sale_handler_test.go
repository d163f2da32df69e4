package handlers

import (
	"net/http"
	"testing"

	"sonakshi-pos/internal/database"
	"sonakshi-pos/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func seedItem(t *testing.T, r *gin.Engine, name string, price string, stock int) models.Item {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/items", map[string]interface{}{
		"name":          name,
		"category":      "Grocery",
		"selling_price": price,
		"stock":         stock,
	})
	wantStatus(t, w, http.StatusCreated)

	var item models.Item
	decode(t, w, &item)
	return item
}

func checkoutBody(item models.Item, qty int) map[string]interface{} {
	return map[string]interface{}{
		"items": []map[string]interface{}{
			{"item_id": item.ID, "quantity": qty},
		},
		"payment_method": "cash",
	}
}

func TestCheckoutDecrementsStockAndLogsMovement(t *testing.T) {
	r := setupRouter(t)
	item := seedItem(t, r, "Sugar 1kg", "45.00", 5)

	w := doJSON(t, r, http.MethodPost, "/api/checkout", checkoutBody(item, 2))
	wantStatus(t, w, http.StatusCreated)

	var sale models.Sale
	decode(t, w, &sale)
	if sale.InvoiceNumber != "INV-000001" {
		t.Errorf("invoice number = %s, want INV-000001", sale.InvoiceNumber)
	}
	if !sale.Total.Equal(decimal.RequireFromString("90")) {
		t.Errorf("total = %s, want 90", sale.Total)
	}

	var after models.Item
	if err := database.DB.First(&after, "id = ?", item.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if after.Stock != 3 {
		t.Errorf("stock = %d, want 3", after.Stock)
	}

	var movements []models.StockMovement
	database.DB.Where("item_id = ?", item.ID).Find(&movements)
	if len(movements) != 1 {
		t.Fatalf("movements = %d, want 1", len(movements))
	}
	m := movements[0]
	if m.Type != "out" || m.Quantity != 2 || m.Reason != "Sale" || m.Reference != sale.InvoiceNumber {
		t.Errorf("movement = %+v, want out/2/Sale/%s", m, sale.InvoiceNumber)
	}
}

func TestCheckoutMergesDuplicateCartLines(t *testing.T) {
	r := setupRouter(t)
	item := seedItem(t, r, "Milk 1L", "25.00", 5)

	body := map[string]interface{}{
		"items": []map[string]interface{}{
			{"item_id": item.ID, "quantity": 3},
			{"item_id": item.ID, "quantity": 3},
		},
		"payment_method": "cash",
	}
	// 3+3 against stock 5: the second line must see the first one's
	// decrement and fail, leaving nothing behind.
	w := doJSON(t, r, http.MethodPost, "/api/checkout", body)
	wantStatus(t, w, http.StatusBadRequest)

	var after models.Item
	if err := database.DB.First(&after, "id = ?", item.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if after.Stock != 5 {
		t.Errorf("stock = %d, want 5 (unchanged)", after.Stock)
	}

	body["items"] = []map[string]interface{}{
		{"item_id": item.ID, "quantity": 2},
		{"item_id": item.ID, "quantity": 2},
	}
	w = doJSON(t, r, http.MethodPost, "/api/checkout", body)
	wantStatus(t, w, http.StatusCreated)

	if err := database.DB.First(&after, "id = ?", item.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if after.Stock != 1 {
		t.Errorf("stock = %d, want 1", after.Stock)
	}
}

func TestCheckoutComputesDiscountAndTax(t *testing.T) {
	r := setupRouter(t)
	item := seedItem(t, r, "Rice 5kg", "100.00", 10)

	w := doJSON(t, r, http.MethodPost, "/api/checkout", map[string]interface{}{
		"items": []map[string]interface{}{
			{"item_id": item.ID, "quantity": 2},
		},
		"discount_percent": 10,
		"tax_rate":         18,
		"tax_enabled":      true,
		"payment_method":   "upi",
	})
	wantStatus(t, w, http.StatusCreated)

	var sale models.Sale
	decode(t, w, &sale)

	if !sale.Subtotal.Equal(decimal.RequireFromString("200")) {
		t.Errorf("subtotal = %s, want 200", sale.Subtotal)
	}
	if !sale.Discount.Equal(decimal.RequireFromString("20")) {
		t.Errorf("discount = %s, want 20", sale.Discount)
	}
	if !sale.Tax.Equal(decimal.RequireFromString("32.4")) {
		t.Errorf("tax = %s, want 32.4", sale.Tax)
	}
	if !sale.Total.Equal(decimal.RequireFromString("212.4")) {
		t.Errorf("total = %s, want 212.4", sale.Total)
	}
}

func TestCheckoutInvoiceNumbersAreSequential(t *testing.T) {
	r := setupRouter(t)
	item := seedItem(t, r, "Soap", "30.00", 100)

	want := []string{"INV-000001", "INV-000002", "INV-000003"}
	for _, expected := range want {
		w := doJSON(t, r, http.MethodPost, "/api/checkout", checkoutBody(item, 1))
		wantStatus(t, w, http.StatusCreated)

		var sale models.Sale
		decode(t, w, &sale)
		if sale.InvoiceNumber != expected {
			t.Errorf("invoice number = %s, want %s", sale.InvoiceNumber, expected)
		}
	}
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/checkout", map[string]interface{}{
		"items":          []map[string]interface{}{},
		"payment_method": "cash",
	})
	wantStatus(t, w, http.StatusBadRequest)

	var count int64
	database.DB.Model(&models.Sale{}).Count(&count)
	if count != 0 {
		t.Errorf("sales created = %d, want 0", count)
	}
}

func TestCheckoutInsufficientStockLeavesNothingBehind(t *testing.T) {
	r := setupRouter(t)
	item := seedItem(t, r, "Milk", "25.00", 1)

	w := doJSON(t, r, http.MethodPost, "/api/checkout", checkoutBody(item, 5))
	wantStatus(t, w, http.StatusBadRequest)

	var after models.Item
	database.DB.First(&after, "id = ?", item.ID)
	if after.Stock != 1 {
		t.Errorf("stock = %d, want untouched 1", after.Stock)
	}

	var sales, movements int64
	database.DB.Model(&models.Sale{}).Count(&sales)
	database.DB.Model(&models.StockMovement{}).Count(&movements)
	if sales != 0 || movements != 0 {
		t.Errorf("sales=%d movements=%d, want 0/0 after rollback", sales, movements)
	}
}

func TestCheckoutUnknownPaymentMethod(t *testing.T) {
	r := setupRouter(t)
	item := seedItem(t, r, "Pen", "10.00", 5)

	body := checkoutBody(item, 1)
	body["payment_method"] = "cheque"
	w := doJSON(t, r, http.MethodPost, "/api/checkout", body)
	wantStatus(t, w, http.StatusBadRequest)
}

func TestDeleteSaleRestoresStockOnce(t *testing.T) {
	r := setupRouter(t)
	item := seedItem(t, r, "Tea 250g", "60.00", 5)

	w := doJSON(t, r, http.MethodPost, "/api/checkout", checkoutBody(item, 2))
	wantStatus(t, w, http.StatusCreated)
	var sale models.Sale
	decode(t, w, &sale)

	w = doJSON(t, r, http.MethodDelete, "/api/sales/"+sale.ID, nil)
	wantStatus(t, w, http.StatusOK)

	var after models.Item
	database.DB.First(&after, "id = ?", item.ID)
	if after.Stock != 5 {
		t.Errorf("stock after delete = %d, want 5", after.Stock)
	}

	var restock models.StockMovement
	err := database.DB.Where("item_id = ? AND type = ?", item.ID, "in").First(&restock).Error
	if err != nil {
		t.Fatalf("expected an 'in' movement after delete: %v", err)
	}
	if restock.Quantity != 2 || restock.Reference != sale.InvoiceNumber {
		t.Errorf("restock movement = %+v, want qty 2 ref %s", restock, sale.InvoiceNumber)
	}

	// Repeating the delete must 404 and must not restock again.
	w = doJSON(t, r, http.MethodDelete, "/api/sales/"+sale.ID, nil)
	wantStatus(t, w, http.StatusNotFound)

	database.DB.First(&after, "id = ?", item.ID)
	if after.Stock != 5 {
		t.Errorf("stock after repeated delete = %d, want still 5", after.Stock)
	}
}

func TestGetSalesNewestFirstWithSnapshots(t *testing.T) {
	r := setupRouter(t)
	item := seedItem(t, r, "Notebook", "40.00", 10)

	w := doJSON(t, r, http.MethodPost, "/api/checkout", checkoutBody(item, 1))
	wantStatus(t, w, http.StatusCreated)

	// Rename the item; the invoice must keep the name it was sold under.
	w = doJSON(t, r, http.MethodPut, "/api/items/"+item.ID, map[string]interface{}{"name": "Notebook A5"})
	statusOK(t, w)

	w = doJSON(t, r, http.MethodGet, "/api/sales", nil)
	statusOK(t, w)

	var sales []models.Sale
	decode(t, w, &sales)
	if len(sales) != 1 || len(sales[0].Items) != 1 {
		t.Fatalf("sales = %+v, want 1 sale with 1 line", sales)
	}
	if sales[0].Items[0].Name != "Notebook" {
		t.Errorf("line name = %s, want snapshot 'Notebook'", sales[0].Items[0].Name)
	}
}
