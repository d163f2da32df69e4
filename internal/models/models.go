package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User - whoever is behind the till (admin or cashier)
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"`    // Never return this in JSON
	Role         string    `json:"role"` // 'admin', 'cashier'
	CreatedAt    time.Time `json:"created_at"`
}

// Item - the inventory catalog
type Item struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	Name          string          `gorm:"size:255" json:"name"`
	SKU           string          `gorm:"size:32" json:"sku"`
	Barcode       string          `gorm:"size:32;index" json:"barcode"`
	Category      string          `gorm:"size:100" json:"category"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"purchase_price"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(12,2)" json:"selling_price"`
	Stock         int             `json:"stock"`
	MinStock      int             `json:"min_stock"`
	Unit          string          `gorm:"size:32" json:"unit"`
	Description   string          `gorm:"type:text" json:"description"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Sale - the invoice header. Totals are computed once at checkout and
// never recomputed, so printed receipts always match what was charged.
type Sale struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	InvoiceNumber string          `gorm:"uniqueIndex;size:20" json:"invoice_number"`
	CashierID     uint            `json:"cashier_id"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2)" json:"subtotal"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"discount"`
	Tax           decimal.Decimal `gorm:"type:decimal(12,2)" json:"tax"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2)" json:"total"`
	PaymentMethod string          `gorm:"size:10" json:"payment_method"` // 'cash', 'card', 'upi', 'credit'
	CustomerName  string          `gorm:"size:100" json:"customer_name,omitempty"`
	CustomerPhone string          `gorm:"size:20" json:"customer_phone,omitempty"`
	TerminalID    string          `gorm:"size:20" json:"terminal_id"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []SaleItem      `gorm:"foreignKey:SaleID" json:"items"`
}

// SaleItem - one line on an invoice. Name, barcode and price are
// snapshots so the invoice survives later edits or deletion of the Item.
type SaleItem struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	SaleID   string          `gorm:"size:36;index" json:"sale_id"`
	ItemID   string          `gorm:"size:36" json:"item_id"`
	Name     string          `gorm:"size:255" json:"name"`
	Barcode  string          `gorm:"size:32" json:"barcode"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Discount decimal.Decimal `gorm:"type:decimal(12,2)" json:"discount"`
	Total    decimal.Decimal `gorm:"type:decimal(12,2)" json:"total"`
}

// StockMovement - append-only log of every stock change.
// Written automatically at checkout ('out') and by manual adjustments.
type StockMovement struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ItemID    string    `gorm:"size:36;index" json:"item_id"`
	ItemName  string    `gorm:"size:255" json:"item_name"`
	Type      string    `gorm:"size:12" json:"type"` // 'in', 'out', 'adjustment'
	Quantity  int       `json:"quantity"`
	Reason    string    `gorm:"size:255" json:"reason"`
	Reference string    `gorm:"size:64" json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// InvoiceCounter - single-row table holding the last issued invoice
// sequence value. Incremented under a row lock, never read-then-written.
type InvoiceCounter struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	Counter int64 `json:"counter"`
}

// PaymentMethods is the closed set accepted at checkout.
var PaymentMethods = map[string]bool{
	"cash":   true,
	"card":   true,
	"upi":    true,
	"credit": true,
}

// MovementTypes is the closed set of stock movement kinds.
var MovementTypes = map[string]bool{
	"in":         true,
	"out":        true,
	"adjustment": true,
}
