package repositories

import (
	"fmt"

	"sales-insights/internal/models"

	"gorm.io/gorm"
)

const bulkInsertBatchSize = 500

// salesTransactionRepository implements SalesTransactionRepositoryInterface
type salesTransactionRepository struct {
	db *gorm.DB
}

// NewSalesTransactionRepository creates a new sales transaction repository
func NewSalesTransactionRepository(db *gorm.DB) SalesTransactionRepositoryInterface {
	return &salesTransactionRepository{
		db: db,
	}
}

// GetAll retrieves every sales transaction ordered by document date then ID.
// The stable order matters: downstream normalization preserves it and the filter
// engine guarantees order-preserving output, so aggregation is deterministic.
func (r *salesTransactionRepository) GetAll() ([]models.SalesTransaction, error) {
	var transactions []models.SalesTransaction

	if err := r.db.Order("document_date, id").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to load sales transactions: %w", err)
	}

	return transactions, nil
}

// Count returns the number of rows in the source table
func (r *salesTransactionRepository) Count() (int64, error) {
	var total int64

	if err := r.db.Model(&models.SalesTransaction{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count sales transactions: %w", err)
	}

	return total, nil
}

// DistinctRegions returns the distinct region values in lexical order
func (r *salesTransactionRepository) DistinctRegions() ([]string, error) {
	var regions []string

	if err := r.db.Model(&models.SalesTransaction{}).
		Distinct("region").
		Order("region").
		Pluck("region", &regions).Error; err != nil {
		return nil, fmt.Errorf("failed to list distinct regions: %w", err)
	}

	return regions, nil
}

// BulkInsert writes transactions in batches inside a single database transaction
func (r *salesTransactionRepository) BulkInsert(transactions []models.SalesTransaction) error {
	if len(transactions) == 0 {
		return nil
	}

	if err := r.db.CreateInBatches(transactions, bulkInsertBatchSize).Error; err != nil {
		return fmt.Errorf("failed to bulk insert sales transactions: %w", err)
	}

	return nil
}

// DeleteAll removes every row from the source table (reseed support)
func (r *salesTransactionRepository) DeleteAll() error {
	if err := r.db.Where("1 = 1").Delete(&models.SalesTransaction{}).Error; err != nil {
		return fmt.Errorf("failed to delete sales transactions: %w", err)
	}

	return nil
}
