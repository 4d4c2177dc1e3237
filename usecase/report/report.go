package report

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/repository"
)

type UseCase struct {
	reports      repository.ReportRepository
	transactions repository.TransactionRepository
	logger       *zap.Logger
	now          func() time.Time
}

func New(reports repository.ReportRepository, transactions repository.TransactionRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		reports:      reports,
		transactions: transactions,
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock replaces the clock used for month boundaries and the compliance window.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Dashboard runs every metric query concurrently and combines them once all have
// finished. Revenue and expenses cover the current calendar month.
func (uc *UseCase) Dashboard(ctx context.Context, businessID int64) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	month := repository.DateRange{From: domain.MonthStart(uc.now())}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Forecast, err = uc.reports.Forecast(gctx, businessID)
		return err
	})
	g.Go(func() (err error) {
		stats.Revenue, err = uc.reports.SumTransactions(gctx, businessID, domain.TransactionIncome, month)
		return err
	})
	g.Go(func() (err error) {
		stats.Expenses, err = uc.reports.SumTransactions(gctx, businessID, domain.TransactionExpense, month)
		return err
	})
	g.Go(func() (err error) {
		stats.Clients, err = uc.reports.CountClients(gctx, businessID)
		return err
	})
	g.Go(func() (err error) {
		stats.Leads, err = uc.reports.CountOpenLeads(gctx, businessID)
		return err
	})
	g.Go(func() (err error) {
		stats.ForecastedClients, err = uc.reports.CountForecastedClients(gctx, businessID)
		return err
	})
	if err := g.Wait(); err != nil {
		uc.logger.Error("dashboard query failed", zap.Int64("business_id", businessID), zap.Error(err))
		return nil, err
	}

	stats.Profit = stats.Revenue.Sub(stats.Expenses)
	return &stats, nil
}

// FinancialReport builds the income statement and simplified balance sheet, for one
// month when period is set and for all time otherwise.
func (uc *UseCase) FinancialReport(ctx context.Context, businessID int64, period domain.Period) (*domain.FinancialReport, error) {
	var window repository.DateRange
	if from, to, ok := period.Bounds(); ok {
		window = repository.DateRange{From: from, To: to}
	}
	income, expenses, err := uc.reports.Totals(ctx, businessID, window)
	if err != nil {
		return nil, err
	}
	report := domain.NewFinancialReport(income, expenses)
	return &report, nil
}

func (uc *UseCase) TaxReport(ctx context.Context, businessID int64) ([]domain.TaxLine, error) {
	return uc.reports.TaxTotals(ctx, businessID)
}

// ComplianceAlerts lists documents expiring between today and the end of the compliance
// window, both days included.
func (uc *UseCase) ComplianceAlerts(ctx context.Context, businessID int64) ([]domain.Document, error) {
	today := uc.now()
	until := today.AddDate(0, 0, domain.ComplianceWindowDays)
	return uc.reports.ExpiringDocuments(ctx, businessID, domain.FormatDate(today), domain.FormatDate(until))
}
