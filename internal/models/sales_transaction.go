package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrMissingDocumentDate = errors.New("document date is required")
	ErrMissingRegion       = errors.New("region is required")
	ErrMissingCustomerCode = errors.New("customer code is required")
	ErrMissingStockCode    = errors.New("stock code is required")
	ErrNegativeCartonQty   = errors.New("carton quantity cannot be negative")
)

// SalesTransaction is one row of the source sales table. Rows are written once by
// the loader (or the dev seeder) and never mutated afterwards.
type SalesTransaction struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	DocumentDate time.Time       `gorm:"not null;index" json:"document_date"`
	Region       string          `gorm:"type:varchar(50);not null;index" json:"region"`
	CustomerCode string          `gorm:"type:varchar(50);not null;index" json:"customer_code"`
	StockCode    string          `gorm:"type:varchar(50);not null;index" json:"stock_code"`
	NetAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"net_amount"`
	CartonQty    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"carton_qty"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
}

// TableName overrides the default GORM table name
func (SalesTransaction) TableName() string {
	return "sales_transactions"
}

// BeforeCreate hook for SalesTransaction
func (t *SalesTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	return t.Validate()
}

// Validate validates the sales transaction fields
func (t *SalesTransaction) Validate() error {
	if t.DocumentDate.IsZero() {
		return ErrMissingDocumentDate
	}

	if t.Region == "" {
		return ErrMissingRegion
	}

	if t.CustomerCode == "" {
		return ErrMissingCustomerCode
	}

	if t.StockCode == "" {
		return ErrMissingStockCode
	}

	if t.CartonQty.IsNegative() {
		return ErrNegativeCartonQty
	}

	return nil
}
