package database

import (
	"testing"
	"time"

	"sales-insights/internal/config"
	"sales-insights/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			Driver:         "sqlite",
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	if err := db.Close(); err != nil {
		t.Logf("failed to close test database: %v", err)
	}
}

func CreateTestSalesTransaction(t *testing.T, db *DB, date time.Time, region string, amount float64) *models.SalesTransaction {
	t.Helper()

	row := &models.SalesTransaction{
		DocumentDate: date,
		Region:       region,
		CustomerCode: "C-TEST",
		StockCode:    "S-TEST",
		NetAmount:    decimal.NewFromFloat(amount),
		CartonQty:    decimal.NewFromInt(1),
	}

	if err := db.Create(row).Error; err != nil {
		t.Fatalf("failed to create test sales transaction: %v", err)
	}

	return row
}
