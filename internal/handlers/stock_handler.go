package handlers

import (
	"net/http"

	"sonakshi-pos/internal/database"
	"sonakshi-pos/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdjustStockRequest covers the three manual movement kinds:
// 'in' adds, 'out' subtracts, 'adjustment' sets the absolute count.
type AdjustStockRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason" binding:"required"`
}

// AdjustStock applies a manual stock change and logs the movement, both
// inside one transaction. A change that would leave negative stock is
// rejected.
func AdjustStock(c *gin.Context) {
	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id, type and reason are required"})
		return
	}

	if !models.MovementTypes[req.Type] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type must be one of in, out, adjustment"})
		return
	}
	if req.Quantity < 0 || (req.Quantity == 0 && req.Type != "adjustment") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
		return
	}

	tx := database.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var item models.Item
	if err := database.LockForUpdate(tx).First(&item, "id = ?", req.ItemID).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	switch req.Type {
	case "in":
		item.Stock += req.Quantity
	case "out":
		if item.Stock < req.Quantity {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock"})
			return
		}
		item.Stock -= req.Quantity
	case "adjustment":
		item.Stock = req.Quantity
	}

	if err := tx.Save(&item).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
		return
	}

	movement := models.StockMovement{
		ID:       uuid.NewString(),
		ItemID:   item.ID,
		ItemName: item.Name,
		Type:     req.Type,
		Quantity: req.Quantity,
		Reason:   req.Reason,
	}
	if err := tx.Create(&movement).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log stock movement"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust stock"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "movement": movement})
}

// --- GET: Movement history, newest first ---
// ?item_id=X narrows to one item.
func GetStockMovements(c *gin.Context) {
	var movements []models.StockMovement

	query := database.DB.Order("created_at desc")
	if itemID := c.Query("item_id"); itemID != "" {
		query = query.Where("item_id = ?", itemID)
	}
	if limit, err := intQuery(c, "limit"); err == nil && limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&movements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock movements"})
		return
	}

	c.JSON(http.StatusOK, movements)
}
