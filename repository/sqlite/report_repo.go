package sqlite

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/fastygo/backoffice/domain"
	infra "github.com/fastygo/backoffice/internal/infrastructure/sqlite"
	"github.com/fastygo/backoffice/repository"
)

type reportRepository struct {
	db *infra.Manager
}

// NewReportRepository returns a SQLite-backed ReportRepository.
func NewReportRepository(db *infra.Manager) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Forecast(ctx context.Context, businessID int64) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(expected_value * probability / 100.0), 0)
	FROM leads
	WHERE business_id = ? AND COALESCE(status, 'New') != ?
	`
	return r.sum(ctx, query, businessID, domain.LeadStatusConverted)
}

func (r *reportRepository) SumTransactions(ctx context.Context, businessID int64, txnType string, window repository.DateRange) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(amount), 0)
	FROM transactions
	WHERE business_id = ? AND type = ?
	  AND (? = '' OR date >= ?)
	  AND (? = '' OR date < ?)
	`
	return r.sum(ctx, query, businessID, txnType, window.From, window.From, window.To, window.To)
}

func (r *reportRepository) Totals(ctx context.Context, businessID int64, window repository.DateRange) (income, expenses decimal.Decimal, err error) {
	const query = `
	SELECT
		COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0)
	FROM transactions
	WHERE business_id = ?
	  AND (? = '' OR date >= ?)
	  AND (? = '' OR date < ?)
	`
	err = r.db.Do(ctx, func(db *sql.DB) error {
		return db.QueryRowContext(ctx, query,
			domain.TransactionIncome, domain.TransactionExpense, businessID,
			window.From, window.From, window.To, window.To,
		).Scan(&income, &expenses)
	})
	return income, expenses, err
}

func (r *reportRepository) CountClients(ctx context.Context, businessID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM clients WHERE business_id = ?`, businessID)
}

func (r *reportRepository) CountOpenLeads(ctx context.Context, businessID int64) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM leads WHERE business_id = ? AND COALESCE(status, 'New') != ?`,
		businessID, domain.LeadStatusConverted,
	)
}

func (r *reportRepository) CountForecastedClients(ctx context.Context, businessID int64) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM leads WHERE business_id = ? AND (status IN (?, ?) OR probability > ?)`,
		businessID, domain.LeadStatusProposal, domain.LeadStatusNurturing, domain.HotLeadProbability,
	)
}

func (r *reportRepository) TaxTotals(ctx context.Context, businessID int64) ([]domain.TaxLine, error) {
	const query = `
	SELECT a.tax_category, SUM(t.amount) AS total
	FROM transactions t
	JOIN accounts a ON t.account_id = a.id
	WHERE t.business_id = ?
	  AND t.type = ?
	  AND a.tax_category IS NOT NULL
	GROUP BY a.tax_category
	ORDER BY total DESC
	`

	lines := []domain.TaxLine{}
	err := r.db.Do(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, businessID, domain.TransactionExpense)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var line domain.TaxLine
			if err := rows.Scan(&line.TaxCategory, &line.Total); err != nil {
				return err
			}
			lines = append(lines, line)
		}
		return rows.Err()
	})
	return lines, err
}

func (r *reportRepository) ExpiringDocuments(ctx context.Context, businessID int64, from, to string) ([]domain.Document, error) {
	const query = `
	SELECT ` + documentColumns + `
	FROM documents
	WHERE business_id = ?
	  AND expiry_date IS NOT NULL
	  AND expiry_date >= ?
	  AND expiry_date <= ?
	ORDER BY expiry_date ASC
	`

	var docs []domain.Document
	err := r.db.Do(ctx, func(db *sql.DB) error {
		var err error
		docs, err = queryDocuments(ctx, db, query, businessID, from, to)
		return err
	})
	return docs, err
}

func (r *reportRepository) sum(ctx context.Context, query string, args ...interface{}) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Do(ctx, func(db *sql.DB) error {
		return db.QueryRowContext(ctx, query, args...).Scan(&total)
	})
	return total, err
}

func (r *reportRepository) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var n int
	err := r.db.Do(ctx, func(db *sql.DB) error {
		return db.QueryRowContext(ctx, query, args...).Scan(&n)
	})
	return n, err
}
