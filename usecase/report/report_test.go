package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/repository"
)

type fakeReports struct {
	forecast decimal.Decimal
	sums     map[string]decimal.Decimal
	windows  []repository.DateRange
	failOn   string

	expiringFrom, expiringTo string
}

func (f *fakeReports) fail(name string) error {
	if f.failOn == name {
		return errors.New(name + " failed")
	}
	return nil
}

func (f *fakeReports) Forecast(context.Context, int64) (decimal.Decimal, error) {
	return f.forecast, f.fail("forecast")
}

func (f *fakeReports) SumTransactions(_ context.Context, _ int64, txnType string, window repository.DateRange) (decimal.Decimal, error) {
	return f.sums[txnType], f.fail("sum")
}

func (f *fakeReports) Totals(_ context.Context, _ int64, window repository.DateRange) (decimal.Decimal, decimal.Decimal, error) {
	f.windows = append(f.windows, window)
	return f.sums[domain.TransactionIncome], f.sums[domain.TransactionExpense], f.fail("totals")
}

func (f *fakeReports) CountClients(context.Context, int64) (int, error)   { return 4, nil }
func (f *fakeReports) CountOpenLeads(context.Context, int64) (int, error) { return 3, nil }
func (f *fakeReports) CountForecastedClients(context.Context, int64) (int, error) {
	return 2, f.fail("forecasted")
}

func (f *fakeReports) TaxTotals(context.Context, int64) ([]domain.TaxLine, error) {
	return []domain.TaxLine{}, nil
}

func (f *fakeReports) ExpiringDocuments(_ context.Context, _ int64, from, to string) ([]domain.Document, error) {
	f.expiringFrom, f.expiringTo = from, to
	return []domain.Document{}, nil
}

func fixedClock() time.Time {
	return time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
}

func newFake() *fakeReports {
	return &fakeReports{
		forecast: decimal.RequireFromString("500"),
		sums: map[string]decimal.Decimal{
			domain.TransactionIncome:  decimal.RequireFromString("1200.50"),
			domain.TransactionExpense: decimal.RequireFromString("200.25"),
		},
	}
}

func TestDashboardCombinesMetrics(t *testing.T) {
	uc := New(newFake(), nil, nil).WithClock(fixedClock)

	stats, err := uc.Dashboard(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, stats.Forecast.Equal(decimal.RequireFromString("500")))
	assert.True(t, stats.Profit.Equal(decimal.RequireFromString("1000.25")), stats.Profit.String())
	assert.Equal(t, 4, stats.Clients)
	assert.Equal(t, 3, stats.Leads)
	assert.Equal(t, 2, stats.ForecastedClients)
}

func TestDashboardFailsWhenAnyQueryFails(t *testing.T) {
	fake := newFake()
	fake.failOn = "forecasted"
	uc := New(fake, nil, nil).WithClock(fixedClock)

	stats, err := uc.Dashboard(context.Background(), 1)
	assert.Error(t, err)
	assert.Nil(t, stats)
}

func TestFinancialReportWindow(t *testing.T) {
	fake := newFake()
	uc := New(fake, nil, nil)

	report, err := uc.FinancialReport(context.Background(), 1, domain.Period{Month: 12, Year: 2023})
	require.NoError(t, err)
	assert.True(t, report.IncomeStatement.NetProfit.Equal(decimal.RequireFromString("1000.25")))
	assert.True(t, report.BalanceSheet.Equity.Equal(report.BalanceSheet.Assets))
	assert.True(t, report.BalanceSheet.Liabilities.IsZero())

	_, err = uc.FinancialReport(context.Background(), 1, domain.Period{})
	require.NoError(t, err)

	require.Len(t, fake.windows, 2)
	assert.Equal(t, repository.DateRange{From: "2023-12-01", To: "2024-01-01"}, fake.windows[0])
	assert.Equal(t, repository.DateRange{}, fake.windows[1])
}

func TestComplianceWindowIsThirtyDaysInclusive(t *testing.T) {
	fake := newFake()
	uc := New(fake, nil, nil).WithClock(fixedClock)

	_, err := uc.ComplianceAlerts(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", fake.expiringFrom)
	assert.Equal(t, "2024-04-14", fake.expiringTo)
}
