package handlers

import (
	"fmt"
	"net/http"
	"time"

	"sonakshi-pos/internal/database"
	"sonakshi-pos/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// --- GET: /api/items/export ---
// Streams the full catalog as an .xlsx workbook.
func ExportItems(c *gin.Context) {
	var items []models.Item
	if err := database.DB.Order("category asc, name asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Items"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Name", "SKU", "Barcode", "Category", "Purchase Price", "Selling Price", "Stock", "Min Stock", "Unit"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, item := range items {
		values := []interface{}{
			item.Name, item.SKU, item.Barcode, item.Category,
			item.PurchasePrice.InexactFloat64(), item.SellingPrice.InexactFloat64(),
			item.Stock, item.MinStock, item.Unit,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	writeWorkbook(c, f, "items")
}

// --- GET: /api/sales/export ---
// One row per invoice; persisted totals go out verbatim.
func ExportSales(c *gin.Context) {
	var sales []models.Sale
	if err := database.DB.Order("created_at asc").Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sales"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Invoice", "Date", "Subtotal", "Discount", "Tax", "Total", "Payment", "Customer"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, sale := range sales {
		values := []interface{}{
			sale.InvoiceNumber,
			sale.CreatedAt.Format("2006-01-02 15:04"),
			sale.Subtotal.InexactFloat64(),
			sale.Discount.InexactFloat64(),
			sale.Tax.InexactFloat64(),
			sale.Total.InexactFloat64(),
			sale.PaymentMethod,
			sale.CustomerName,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	writeWorkbook(c, f, "sales")
}

func writeWorkbook(c *gin.Context, f *excelize.File, name string) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write workbook"})
	}
}
