package sqlite

import (
	"context"
	"database/sql"

	"github.com/fastygo/backoffice/domain"
	infra "github.com/fastygo/backoffice/internal/infrastructure/sqlite"
	"github.com/fastygo/backoffice/repository"
)

type accountRepository struct {
	db *infra.Manager
}

// NewAccountRepository returns a SQLite-backed AccountRepository.
func NewAccountRepository(db *infra.Manager) repository.AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, business_id, name, type, code, tax_category, COALESCE(created_at, '')`

func (r *accountRepository) List(ctx context.Context, businessID int64) ([]domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE business_id = ? ORDER BY type, name`

	accounts := []domain.Account{}
	err := r.db.Do(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, businessID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			a, err := scanAccount(rows)
			if err != nil {
				return err
			}
			accounts = append(accounts, *a)
		}
		return rows.Err()
	})
	return accounts, err
}

func (r *accountRepository) FindByName(ctx context.Context, businessID int64, name string) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE business_id = ? AND name = ? ORDER BY id LIMIT 1`

	var a *domain.Account
	err := r.db.Do(ctx, func(db *sql.DB) error {
		var err error
		a, err = scanAccount(db.QueryRowContext(ctx, query, businessID, name))
		return err
	})
	return a, err
}

func scanAccount(row scanner) (*domain.Account, error) {
	var (
		a                 domain.Account
		code, taxCategory sql.NullString
	)
	if err := row.Scan(&a.ID, &a.BusinessID, &a.Name, &a.Type, &code, &taxCategory, &a.CreatedAt); err != nil {
		return nil, noRows(err, domain.NewError(domain.ErrCodeNotFound, "account not found"))
	}
	a.Code = code.String
	a.TaxCategory = taxCategory.String
	return &a, nil
}
