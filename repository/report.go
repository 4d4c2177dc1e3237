package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fastygo/backoffice/domain"
)

// DateRange bounds a query by date column. Empty ends are open; To is exclusive.
type DateRange struct {
	From string
	To   string
}

// ReportRepository runs the read-only aggregate queries behind dashboards and reports.
// Each method is a single independent query.
type ReportRepository interface {
	Forecast(ctx context.Context, businessID int64) (decimal.Decimal, error)
	SumTransactions(ctx context.Context, businessID int64, txnType string, window DateRange) (decimal.Decimal, error)
	Totals(ctx context.Context, businessID int64, window DateRange) (income, expenses decimal.Decimal, err error)
	CountClients(ctx context.Context, businessID int64) (int, error)
	CountOpenLeads(ctx context.Context, businessID int64) (int, error)
	CountForecastedClients(ctx context.Context, businessID int64) (int, error)
	TaxTotals(ctx context.Context, businessID int64) ([]domain.TaxLine, error)
	// ExpiringDocuments returns documents whose expiry date lies in [from, to], both
	// inclusive, soonest first.
	ExpiringDocuments(ctx context.Context, businessID int64, from, to string) ([]domain.Document, error)
}
