package services

import (
	"errors"

	"sales-insights/internal/models"
)

var (
	// ErrEmptySelection distinguishes "no filter applied" from "no data matches".
	// A selection that matches zero rows is valid; a selection with no regions
	// is a caller contract violation.
	ErrEmptySelection = errors.New("region selection is empty")
)

// filterService implements FilterServiceInterface
type filterService struct{}

// NewFilterService creates a new filter service
func NewFilterService() FilterServiceInterface {
	return &filterService{}
}

// Filter returns the rows whose region is a member of the selection. Single
// pass, order-preserving, no mutation of the shared table.
func (s *filterService) Filter(table *models.NormalizedTable, selection models.RegionSelection) (*models.FilteredView, error) {
	if selection.IsEmpty() {
		return nil, ErrEmptySelection
	}

	rows := make([]models.NormalizedTransaction, 0, len(table.Rows))
	for i := range table.Rows {
		if selection.Contains(table.Rows[i].Region) {
			rows = append(rows, table.Rows[i])
		}
	}

	return &models.FilteredView{
		Rows:      rows,
		Selection: selection,
	}, nil
}
