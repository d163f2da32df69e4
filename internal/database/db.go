package database

import (
	"log"
	"time"

	"sonakshi-pos/internal/config"
	"sonakshi-pos/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the store configured by DB_DRIVER/DB_DSN and syncs the
// schema. MySQL is the production target; SQLite covers single-terminal
// shops and the test suite.
func Connect(cfg config.Config) {
	if cfg.DBDSN == "" {
		log.Fatal("Error: DB_DSN not set. Please configure your database.")
	}

	var err error
	switch cfg.DBDriver {
	case "sqlite":
		DB, err = gorm.Open(sqlite.Open(cfg.DBDSN), &gorm.Config{})
	default:
		// The DB container can come up after us, so retry a few times.
		for i := 0; i < 5; i++ {
			DB, err = gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{
				Logger: logger.Default.LogMode(logger.Warn),
			})
			if err == nil {
				break
			}
			log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database schema:", err)
	}

	log.Println("Database connected and schema synced")
}

// Migrate syncs the schema and seeds the invoice counter row.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.Sale{},
		&models.SaleItem{},
		&models.StockMovement{},
		&models.InvoiceCounter{},
	)
	if err != nil {
		return err
	}

	// Single counter row, created once. FirstOrCreate keeps restarts
	// from resetting the sequence.
	var counter models.InvoiceCounter
	return db.Where(models.InvoiceCounter{ID: 1}).
		Attrs(models.InvoiceCounter{Counter: 0}).
		FirstOrCreate(&counter).Error
}

// LockForUpdate adds a FOR UPDATE clause on dialects that support it.
// SQLite has no row locks; its single-writer transaction lock already
// serializes these paths.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
