package handlers

import (
	"net/http"
	"time"

	"sonakshi-pos/internal/database"
	"sonakshi-pos/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DashboardStats backs the landing screen's tiles
type DashboardStats struct {
	TodaySales        decimal.Decimal `json:"today_sales"`
	TodayTransactions int64           `json:"today_transactions"`
	TotalItems        int64           `json:"total_items"`
	LowStockItems     int64           `json:"low_stock_items"`
	MonthlySales      decimal.Decimal `json:"monthly_sales"`
	MonthlyProfit     decimal.Decimal `json:"monthly_profit"`
	RecentSales       []models.Sale   `json:"recent_sales"`
}

// --- GET: /api/reports/dashboard ---
func GetDashboard(c *gin.Context) {
	var stats DashboardStats
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	today, err := database.GetSalesReport(startOfDay, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate today's sales"})
		return
	}
	stats.TodaySales = today.TotalRevenue
	stats.TodayTransactions = today.TotalCount

	month, err := database.GetSalesReport(startOfMonth, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate monthly sales"})
		return
	}
	stats.MonthlySales = month.TotalRevenue

	if err := database.DB.Model(&models.Item{}).Count(&stats.TotalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count items"})
		return
	}
	if err := database.DB.Model(&models.Item{}).
		Where("stock <= min_stock").
		Count(&stats.LowStockItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count low stock items"})
		return
	}

	// Profit uses the item's current purchase price; purchase cost is
	// not snapshotted on sale lines. Lines whose item was deleted drop
	// out of the join.
	profitRow := database.DB.Table("sale_items").
		Select("COALESCE(SUM((sale_items.price - items.purchase_price) * sale_items.quantity - sale_items.discount), 0)").
		Joins("JOIN sales ON sale_items.sale_id = sales.id").
		Joins("JOIN items ON sale_items.item_id = items.id").
		Where("sales.created_at >= ?", startOfMonth).
		Row()
	if err := profitRow.Scan(&stats.MonthlyProfit); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate monthly profit"})
		return
	}

	if err := database.DB.Preload("Items").
		Order("created_at desc").Limit(10).
		Find(&stats.RecentSales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent sales"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ValuationItem is one row of the stock valuation report
type ValuationItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	CostPrice decimal.Decimal `json:"cost_price"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// CategoryGroup groups valuation rows under one category heading
type CategoryGroup struct {
	CategoryName string          `json:"category_name"`
	Items        []ValuationItem `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// ValuationResponse is the final payload for the valuation screen
type ValuationResponse struct {
	Categories []CategoryGroup `json:"categories"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// GetStockValuation prices the physical inventory at purchase cost,
// grouped by category.
func GetStockValuation(c *gin.Context) {
	var items []models.Item
	if err := database.DB.Order("category asc, name asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	var response ValuationResponse
	grouped := make(map[string]*CategoryGroup)
	var order []string

	for _, item := range items {
		catName := item.Category
		if catName == "" {
			catName = "Uncategorized"
		}

		group, exists := grouped[catName]
		if !exists {
			group = &CategoryGroup{CategoryName: catName}
			grouped[catName] = group
			order = append(order, catName)
		}

		itemTotal := item.PurchasePrice.Mul(decimal.NewFromInt(int64(item.Stock)))
		group.Items = append(group.Items, ValuationItem{
			Name:      item.Name,
			Quantity:  item.Stock,
			CostPrice: item.PurchasePrice,
			TotalCost: itemTotal,
		})
		group.Subtotal = group.Subtotal.Add(itemTotal)
		response.GrandTotal = response.GrandTotal.Add(itemTotal)
	}

	for _, catName := range order {
		response.Categories = append(response.Categories, *grouped[catName])
	}

	c.JSON(http.StatusOK, response)
}
