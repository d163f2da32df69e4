package handlers

import (
	"net/http"

	"sonakshi-pos/internal/database"
	"sonakshi-pos/internal/models"
	"sonakshi-pos/internal/pos"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- GET: List items ---
// ?low_stock=true narrows to items at or below their minimum stock,
// ?category=X filters by category.
func GetItems(c *gin.Context) {
	var items []models.Item

	query := database.DB.Order("name asc")
	if c.Query("low_stock") == "true" {
		query = query.Where("stock <= min_stock")
	}
	if cat := c.Query("category"); cat != "" {
		query = query.Where("category = ?", cat)
	}

	if err := query.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// --- GET: Look up a single item ---
func GetItem(c *gin.Context) {
	var item models.Item
	if err := database.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// --- GET: Scan by barcode ---
// The new-sale screen calls this for every scanner beep.
func ScanItem(c *gin.Context) {
	var item models.Item
	if err := database.DB.First(&item, "barcode = ?", c.Param("barcode")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No item with that barcode"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// --- POST: Add a new item ---
// Missing barcode/SKU are generated; a supplied barcode must not
// already be in use.
func AddItem(c *gin.Context) {
	var item models.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if item.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item name is required"})
		return
	}
	if item.Stock < 0 || item.MinStock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
		return
	}
	if item.PurchasePrice.IsNegative() || item.SellingPrice.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prices cannot be negative"})
		return
	}

	if item.Barcode == "" {
		barcode, err := uniqueBarcode(database.DB)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate barcode"})
			return
		}
		item.Barcode = barcode
	} else if barcodeTaken(database.DB, item.Barcode, "") {
		c.JSON(http.StatusConflict, gin.H{"error": "An item with this barcode already exists"})
		return
	}

	if item.SKU == "" {
		item.SKU = pos.GenerateSKU(item.Category, item.Name)
	}
	item.ID = uuid.NewString()

	if err := database.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// --- PUT: Edit an item ---
// Partial update via a map so only the fields sent get touched.
func UpdateItem(c *gin.Context) {
	id := c.Param("id")

	var item models.Item
	if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	// id and stock never change through this route; stock belongs to
	// checkout and the stock-adjustment flow.
	delete(updateData, "id")
	delete(updateData, "stock")

	if barcode, ok := updateData["barcode"].(string); ok && barcodeTaken(database.DB, barcode, id) {
		c.JSON(http.StatusConflict, gin.H{"error": "An item with this barcode already exists"})
		return
	}

	if err := database.DB.Model(&item).Updates(updateData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// --- DELETE: Remove an item ---
// Historical invoices keep their snapshots, so no cascade is needed.
func DeleteItem(c *gin.Context) {
	result := database.DB.Delete(&models.Item{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete item"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

// --- POST: Generate a fresh barcode ---
// The generator is only probabilistically unique, so it is retried
// against the catalog until a free code comes up.
func GenerateBarcode(c *gin.Context) {
	barcode, err := uniqueBarcode(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate barcode"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"barcode": barcode})
}

// --- POST: Generate a SKU suggestion ---
func GenerateSKU(c *gin.Context) {
	var req struct {
		Category string `json:"category"`
		Name     string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item name is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sku": pos.GenerateSKU(req.Category, req.Name)})
}

func uniqueBarcode(db *gorm.DB) (string, error) {
	for i := 0; i < 10; i++ {
		code := pos.GenerateBarcode()
		var count int64
		if err := db.Model(&models.Item{}).Where("barcode = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	// 10 collisions over a 10^9 space means something is badly wrong
	return "", gorm.ErrDuplicatedKey
}

func barcodeTaken(db *gorm.DB, barcode, excludeID string) bool {
	var count int64
	query := db.Model(&models.Item{}).Where("barcode = ?", barcode)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	query.Count(&count)
	return count > 0
}
