package sqlite

import (
	"context"
	"database/sql"

	"github.com/fastygo/backoffice/domain"
	infra "github.com/fastygo/backoffice/internal/infrastructure/sqlite"
	"github.com/fastygo/backoffice/repository"
)

type transactionRepository struct {
	db *infra.Manager
}

// NewTransactionRepository returns a SQLite-backed TransactionRepository.
func NewTransactionRepository(db *infra.Manager) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	if txn == nil {
		return nil, domain.ErrInvalidPayload
	}
	err := r.db.Do(ctx, func(db *sql.DB) error {
		return insertTransaction(ctx, db, txn)
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func (r *transactionRepository) List(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	query := `
	SELECT t.id, t.business_id, t.date, t.description, t.amount, t.type, t.account_id, t.client_id,
		COALESCE(a.name, ''), COALESCE(c.name, ''), COALESCE(t.created_at, '')
	FROM transactions t
	LEFT JOIN accounts a ON t.account_id = a.id
	LEFT JOIN clients c ON t.client_id = c.id
	WHERE t.business_id = ?`
	args := []interface{}{filter.BusinessID}

	if from, to, ok := filter.Period.Bounds(); ok {
		query += ` AND t.date >= ? AND t.date < ?`
		args = append(args, from, to)
	}
	query += ` ORDER BY t.date DESC, t.id DESC LIMIT ?`
	args = append(args, normalizeLimit(filter.Limit))

	txns := []domain.Transaction{}
	err := r.db.Do(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				t                   domain.Transaction
				accountID, clientID sql.NullInt64
			)
			if err := rows.Scan(
				&t.ID,
				&t.BusinessID,
				&t.Date,
				&t.Description,
				&t.Amount,
				&t.Type,
				&accountID,
				&clientID,
				&t.AccountName,
				&t.ClientName,
				&t.CreatedAt,
			); err != nil {
				return err
			}
			t.AccountID = idPtr(accountID)
			t.ClientID = idPtr(clientID)
			txns = append(txns, t)
		}
		return rows.Err()
	})
	return txns, err
}

func (r *transactionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.Do(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
		if err != nil {
			return classify(err)
		}
		return affected(res, domain.ErrTransactionNotFound)
	})
}

func insertTransaction(ctx context.Context, q queryer, txn *domain.Transaction) error {
	const query = `
	INSERT INTO transactions (business_id, date, description, amount, type, account_id, client_id)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	RETURNING id, created_at
	`
	return classify(q.QueryRowContext(ctx, query,
		txn.BusinessID,
		txn.Date,
		txn.Description,
		money(txn.Amount),
		txn.Type,
		nullID(txn.AccountID),
		nullID(txn.ClientID),
	).Scan(&txn.ID, &txn.CreatedAt))
}
