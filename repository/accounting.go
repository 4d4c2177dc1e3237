package repository

import (
	"context"

	"github.com/fastygo/backoffice/domain"
)

// TransactionFilter scopes a transaction listing. Limit zero means the default page of
// 100 rows; a negative Limit returns every row.
type TransactionFilter struct {
	BusinessID int64
	Period     domain.Period
	Limit      int
}

type AccountRepository interface {
	List(ctx context.Context, businessID int64) ([]domain.Account, error)
	FindByName(ctx context.Context, businessID int64, name string) (*domain.Account, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
	Delete(ctx context.Context, id int64) error
}
