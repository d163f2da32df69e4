package database

import (
	"time"

	"sonakshi-pos/internal/models"

	"github.com/shopspring/decimal"
)

// SalesReportResult is a revenue/count aggregate over a date range,
// used by the dashboard and the assistant's sales tool.
type SalesReportResult struct {
	TotalRevenue decimal.Decimal
	TotalCount   int64
}

// GetSalesReport sums persisted sale totals between start and end.
// COALESCE keeps an empty range at 0 instead of NULL.
func GetSalesReport(start, end time.Time) (*SalesReportResult, error) {
	var result SalesReportResult

	// Row().Scan, not gorm Scan: the decimal type fills itself via
	// sql.Scanner, which gorm's struct scanning bypasses.
	row := DB.Model(&models.Sale{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total), 0)").
		Row()
	if err := row.Scan(&result.TotalRevenue); err != nil {
		return nil, err
	}

	err := DB.Model(&models.Sale{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&result.TotalCount).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
