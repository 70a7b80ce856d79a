package services

import (
	"fmt"
	"math/rand"
	"time"

	"sales-insights/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

const (
	customerPoolSize = 120
	stockPoolSize    = 80

	minOrderAmount = 500.0
	maxOrderAmount = 250_000.0
	maxCartonQty   = 400
)

// defaultRegions mirrors the sales territories of the source spreadsheet
var defaultRegions = []string{"Central", "East", "North", "South", "West"}

// salesDataGenerator produces realistic sales rows for development seeding.
// It stands in for the excluded spreadsheet loader collaborator; production
// deployments load the table through migrations or an external ETL job.
type salesDataGenerator struct {
	regions       []string
	customerCodes []string
	stockCodes    []string
	yearStart     int
	yearEnd       int
	rng           *rand.Rand
}

// NewSalesDataGenerator creates a generator covering the given year range
func NewSalesDataGenerator(yearStart, yearEnd int) SalesDataGeneratorInterface {
	if yearEnd < yearStart {
		yearEnd = yearStart
	}

	source := rand.NewSource(time.Now().UnixNano())

	return &salesDataGenerator{
		regions:       defaultRegions,
		customerCodes: buildCodePool("C", customerPoolSize),
		stockCodes:    buildCodePool("SKU", stockPoolSize),
		yearStart:     yearStart,
		yearEnd:       yearEnd,
		rng:           rand.New(source),
	}
}

// Generate produces count sales transactions spread across the year range.
// Amounts skew small with occasional large orders, matching the shape of real
// distributor sales data.
func (g *salesDataGenerator) Generate(count int) []models.SalesTransaction {
	transactions := make([]models.SalesTransaction, 0, count)

	for i := 0; i < count; i++ {
		transactions = append(transactions, models.SalesTransaction{
			DocumentDate: g.randomDate(),
			Region:       g.regions[g.rng.Intn(len(g.regions))],
			CustomerCode: g.customerCodes[g.rng.Intn(len(g.customerCodes))],
			StockCode:    g.stockCodes[g.rng.Intn(len(g.stockCodes))],
			NetAmount:    g.randomAmount(),
			CartonQty:    decimal.NewFromInt(int64(g.rng.Intn(maxCartonQty) + 1)),
		})
	}

	return transactions
}

func (g *salesDataGenerator) randomDate() time.Time {
	start := time.Date(g.yearStart, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(g.yearEnd, time.December, 31, 23, 59, 59, 0, time.UTC)
	return gofakeit.DateRange(start, end)
}

func (g *salesDataGenerator) randomAmount() decimal.Decimal {
	amount := gofakeit.Float64Range(minOrderAmount, maxOrderAmount)

	// Occasional credit notes keep the signed-measure path exercised
	if g.rng.Intn(50) == 0 {
		amount = -gofakeit.Float64Range(minOrderAmount, maxOrderAmount/10)
	}

	return decimal.NewFromFloat(amount).Round(2)
}

func buildCodePool(prefix string, size int) []string {
	codes := make([]string, 0, size)
	for i := 1; i <= size; i++ {
		codes = append(codes, fmt.Sprintf("%s-%04d", prefix, i))
	}
	return codes
}
