package services

import (
	"fmt"
	"log/slog"
	"time"

	apierrors "sales-insights/internal/errors"
	"sales-insights/internal/models"
)

// SchemaError reports the first source row that could not be normalized. The
// whole load is aborted: time-bucketing correctness is load-bearing for every
// downstream chart, so there is no best-effort partial table.
type SchemaError struct {
	Row    int
	Field  string
	Reason string
	Code   apierrors.ErrorCode
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error at row %d, field %q: %s", e.Row, e.Field, e.Reason)
}

// normalizerService implements NormalizerServiceInterface
type normalizerService struct{}

// NewNormalizerService creates a new normalizer service
func NewNormalizerService() NormalizerServiceInterface {
	return &normalizerService{}
}

// Normalize validates every row and derives year, quarter, month and the two
// composite period keys. Row order is preserved; the input rows are not mutated.
func (s *normalizerService) Normalize(rows []models.SalesTransaction) (*models.NormalizedTable, error) {
	normalized := make([]models.NormalizedTransaction, 0, len(rows))

	for i := range rows {
		if err := validateSourceRow(i, &rows[i]); err != nil {
			slog.Error("dataset normalization failed",
				"row", err.Row,
				"field", err.Field,
				"reason", err.Reason)
			return nil, err
		}

		record := models.NormalizedTransaction{SalesTransaction: rows[i]}
		record.DeriveTimeBuckets()
		normalized = append(normalized, record)
	}

	table := &models.NormalizedTable{
		Rows:     normalized,
		Regions:  models.DistinctRegions(normalized),
		LoadedAt: time.Now().UTC(),
	}

	slog.Info("dataset normalized",
		"rows", len(table.Rows),
		"regions", len(table.Regions))

	return table, nil
}

func validateSourceRow(index int, row *models.SalesTransaction) *SchemaError {
	if row.DocumentDate.IsZero() {
		return &SchemaError{
			Row:    index,
			Field:  "document_date",
			Reason: "missing or unparseable date",
			Code:   apierrors.SchemaUnparseableDate,
		}
	}

	if row.Region == "" {
		return &SchemaError{
			Row:    index,
			Field:  "region",
			Reason: "value is empty",
			Code:   apierrors.SchemaMissingField,
		}
	}

	if row.CustomerCode == "" {
		return &SchemaError{
			Row:    index,
			Field:  "customer_code",
			Reason: "value is empty",
			Code:   apierrors.SchemaMissingField,
		}
	}

	if row.StockCode == "" {
		return &SchemaError{
			Row:    index,
			Field:  "stock_code",
			Reason: "value is empty",
			Code:   apierrors.SchemaMissingField,
		}
	}

	if row.CartonQty.IsNegative() {
		return &SchemaError{
			Row:    index,
			Field:  "carton_qty",
			Reason: "quantity cannot be negative",
			Code:   apierrors.SchemaInvalidMeasure,
		}
	}

	return nil
}
