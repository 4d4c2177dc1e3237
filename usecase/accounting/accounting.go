package accounting

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/repository"
)

// transactionPage is the maximum number of transactions one listing returns.
const transactionPage = 100

type UseCase struct {
	accounts     repository.AccountRepository
	transactions repository.TransactionRepository
	logger       *zap.Logger
}

func New(accounts repository.AccountRepository, transactions repository.TransactionRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		accounts:     accounts,
		transactions: transactions,
		logger:       logger,
	}
}

func (uc *UseCase) ListAccounts(ctx context.Context, businessID int64) ([]domain.Account, error) {
	return uc.accounts.List(ctx, businessID)
}

func (uc *UseCase) CreateTransaction(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	if txn == nil {
		return nil, domain.ErrInvalidPayload
	}
	txn.ID = 0
	if err := domain.Validate(txn); err != nil {
		return nil, err
	}
	return uc.transactions.Create(ctx, txn)
}

// ListTransactions returns the newest transactions of the business, optionally limited to
// one calendar month.
func (uc *UseCase) ListTransactions(ctx context.Context, businessID int64, period domain.Period) ([]domain.Transaction, error) {
	return uc.transactions.List(ctx, repository.TransactionFilter{
		BusinessID: businessID,
		Period:     period,
		Limit:      transactionPage,
	})
}

func (uc *UseCase) DeleteTransaction(ctx context.Context, id int64) error {
	return uc.transactions.Delete(ctx, id)
}
