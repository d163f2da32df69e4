package database

import (
	"fmt"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "pos.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestNextInvoiceNumberSequence(t *testing.T) {
	db := openTestDB(t)

	for i := 1; i <= 5; i++ {
		var got string
		err := db.Transaction(func(tx *gorm.DB) error {
			var err error
			got, err = NextInvoiceNumber(tx)
			return err
		})
		if err != nil {
			t.Fatalf("allocate #%d: %v", i, err)
		}
		want := fmt.Sprintf("INV-%06d", i)
		if got != want {
			t.Errorf("invoice #%d = %s, want %s", i, got, want)
		}
	}
}

func TestNextInvoiceNumberRollbackLeavesNoGap(t *testing.T) {
	db := openTestDB(t)

	// A rolled-back checkout must give its number back.
	_ = db.Transaction(func(tx *gorm.DB) error {
		if _, err := NextInvoiceNumber(tx); err != nil {
			return err
		}
		return fmt.Errorf("simulated checkout failure")
	})

	var got string
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		got, err = NextInvoiceNumber(tx)
		return err
	})
	if err != nil {
		t.Fatalf("allocate after rollback: %v", err)
	}
	if got != "INV-000001" {
		t.Errorf("invoice after rollback = %s, want INV-000001", got)
	}
}
