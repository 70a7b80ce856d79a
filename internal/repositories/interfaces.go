package repositories

import (
	"sales-insights/internal/models"
)

// SalesTransactionRepositoryInterface defines the data access contract for the
// source sales table. The table is the loader collaborator's territory: the core
// only ever reads it in full, ordered, at load time.
type SalesTransactionRepositoryInterface interface {
	GetAll() ([]models.SalesTransaction, error)
	Count() (int64, error)
	DistinctRegions() ([]string, error)
	BulkInsert(transactions []models.SalesTransaction) error
	DeleteAll() error
}
