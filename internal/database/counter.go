package database

import (
	"fmt"

	"sonakshi-pos/internal/models"

	"gorm.io/gorm"
)

// NextInvoiceNumber allocates the next invoice number inside tx and
// formats it as INV-000001. The counter row is locked for the duration
// of the transaction, so two concurrent checkouts can never be handed
// the same number; if the caller rolls back, the increment rolls back
// with it and no gap is left behind.
func NextInvoiceNumber(tx *gorm.DB) (string, error) {
	var row models.InvoiceCounter
	if err := LockForUpdate(tx).First(&row, "id = ?", 1).Error; err != nil {
		return "", fmt.Errorf("load invoice counter: %w", err)
	}

	row.Counter++
	if err := tx.Save(&row).Error; err != nil {
		return "", fmt.Errorf("advance invoice counter: %w", err)
	}

	return fmt.Sprintf("INV-%06d", row.Counter), nil
}
