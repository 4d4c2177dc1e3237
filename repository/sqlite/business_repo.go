package sqlite

import (
	"context"
	"database/sql"

	"github.com/fastygo/backoffice/domain"
	infra "github.com/fastygo/backoffice/internal/infrastructure/sqlite"
	"github.com/fastygo/backoffice/repository"
)

type businessRepository struct {
	db *infra.Manager
}

// NewBusinessRepository returns a SQLite-backed BusinessRepository.
func NewBusinessRepository(db *infra.Manager) repository.BusinessRepository {
	return &businessRepository{db: db}
}

const businessColumns = `id, name, COALESCE(currency, 'USD'), COALESCE(created_at, '')`

func (r *businessRepository) First(ctx context.Context) (*domain.Business, error) {
	var b *domain.Business
	err := r.db.Do(ctx, func(db *sql.DB) error {
		var err error
		b, err = scanBusiness(db.QueryRowContext(ctx, `SELECT `+businessColumns+` FROM businesses ORDER BY id LIMIT 1`))
		return err
	})
	return b, err
}

func (r *businessRepository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	var b *domain.Business
	err := r.db.Do(ctx, func(db *sql.DB) error {
		var err error
		b, err = scanBusiness(db.QueryRowContext(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id = ?`, id))
		return err
	})
	return b, err
}

func scanBusiness(row scanner) (*domain.Business, error) {
	var b domain.Business
	if err := row.Scan(&b.ID, &b.Name, &b.Currency, &b.CreatedAt); err != nil {
		return nil, noRows(err, domain.ErrBusinessNotFound)
	}
	return &b, nil
}
