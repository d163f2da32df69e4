package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"sonakshi-pos/internal/database"
	"sonakshi-pos/internal/models"
	"sonakshi-pos/internal/pos"
	"sonakshi-pos/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutRequest is what the new-sale screen sends us
type CheckoutRequest struct {
	Items []struct {
		ItemID   string          `json:"item_id"`
		Quantity int             `json:"quantity"`
		Discount decimal.Decimal `json:"discount"`
	} `json:"items"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	TaxEnabled      bool            `json:"tax_enabled"`
	PaymentMethod   string          `json:"payment_method"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
}

// Checkout persists a completed sale. The whole sequence - invoice
// number, sale record, per-line stock decrement and movement log - runs
// in one transaction, so a failure anywhere leaves nothing behind.
func Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}
	if !models.PaymentMethods[req.PaymentMethod] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment method"})
		return
	}
	if req.DiscountPercent.IsNegative() || req.TaxRate.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Discount and tax cannot be negative"})
		return
	}

	userID := c.MustGet("userID").(uint)

	tx := database.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var saleItems []models.SaleItem
	var lines []pos.Line
	// One entry per distinct item, so a product scanned on two cart
	// lines has its decrements accumulated before the stock check.
	lockedItems := make(map[string]*models.Item)

	for _, entry := range req.Items {
		if entry.Quantity <= 0 {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
			return
		}
		if entry.Discount.IsNegative() {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Line discount cannot be negative"})
			return
		}

		item, ok := lockedItems[entry.ItemID]
		if !ok {
			item = &models.Item{}
			// Lock the row so stock is re-checked at commit time, not
			// just when the cashier scanned the item.
			if err := database.LockForUpdate(tx).First(item, "id = ?", entry.ItemID).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Item %s not found", entry.ItemID)})
				return
			}
			lockedItems[entry.ItemID] = item
		}

		if item.Stock < entry.Quantity {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Insufficient stock for %s", item.Name)})
			return
		}

		line := pos.Line{Price: item.SellingPrice, Quantity: entry.Quantity, Discount: entry.Discount}
		lines = append(lines, line)

		saleItems = append(saleItems, models.SaleItem{
			ItemID:   item.ID,
			Name:     item.Name,
			Barcode:  item.Barcode,
			Quantity: entry.Quantity,
			Price:    item.SellingPrice,
			Discount: entry.Discount,
			Total:    pos.LineTotal(line),
		})

		item.Stock -= entry.Quantity
	}

	totals := pos.CalculateTotals(lines, req.DiscountPercent, req.TaxRate, req.TaxEnabled)

	invoiceNumber, err := database.NextInvoiceNumber(tx)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to allocate invoice number"})
		return
	}

	sale := models.Sale{
		ID:            uuid.NewString(),
		InvoiceNumber: invoiceNumber,
		CashierID:     userID,
		Subtotal:      totals.Subtotal,
		Discount:      totals.TotalDiscount,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: req.PaymentMethod,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		TerminalID:    utils.TerminalID(),
		Items:         saleItems, // GORM inserts the lines with the header
	}

	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale record"})
		return
	}

	for _, item := range lockedItems {
		if err := tx.Save(item).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
			return
		}
	}

	for _, line := range saleItems {
		movement := models.StockMovement{
			ID:        uuid.NewString(),
			ItemID:    line.ItemID,
			ItemName:  line.Name,
			Type:      "out",
			Quantity:  line.Quantity,
			Reason:    "Sale",
			Reference: invoiceNumber,
		}
		if err := tx.Create(&movement).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log stock movement"})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete sale"})
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func intQuery(c *gin.Context, key string) (int, error) {
	return strconv.Atoi(c.Query(key))
}

// --- GET: List invoices, newest first ---
func GetSales(c *gin.Context) {
	var sales []models.Sale
	query := database.DB.Preload("Items").Order("created_at desc")
	if limit, err := intQuery(c, "limit"); err == nil && limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	c.JSON(http.StatusOK, sales)
}

// --- GET: A single invoice with its lines ---
func GetSale(c *gin.Context) {
	var sale models.Sale
	if err := database.DB.Preload("Items").First(&sale, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}
	c.JSON(http.StatusOK, sale)
}

// DeleteSale removes an invoice and puts every line's quantity back on
// the shelf. Runs in one transaction; once the sale row is gone a
// repeat delete is a plain 404, so stock can never be restored twice.
func DeleteSale(c *gin.Context) {
	tx := database.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var sale models.Sale
	if err := tx.Preload("Items").First(&sale, "id = ?", c.Param("id")).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sale"})
		}
		return
	}

	for _, line := range sale.Items {
		var item models.Item
		err := database.LockForUpdate(tx).First(&item, "id = ?", line.ItemID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Item was deleted after the sale; nothing to restock.
			continue
		}
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restock items"})
			return
		}

		item.Stock += line.Quantity
		if err := tx.Save(&item).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restock items"})
			return
		}

		movement := models.StockMovement{
			ID:        uuid.NewString(),
			ItemID:    item.ID,
			ItemName:  item.Name,
			Type:      "in",
			Quantity:  line.Quantity,
			Reason:    "Sale deleted",
			Reference: sale.InvoiceNumber,
		}
		if err := tx.Create(&movement).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log stock movement"})
			return
		}
	}

	if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.SaleItem{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sale"})
		return
	}
	if err := tx.Delete(&sale).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sale"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sale"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted and stock restored"})
}
