package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastygo/backoffice/domain"
	infra "github.com/fastygo/backoffice/internal/infrastructure/sqlite"
	"github.com/fastygo/backoffice/repository"
)

type invoiceRepository struct {
	db *infra.Manager
}

// NewInvoiceRepository returns a SQLite-backed InvoiceRepository.
func NewInvoiceRepository(db *infra.Manager) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `i.id, i.business_id, i.client_id, COALESCE(c.name, ''), i.invoice_number, i.date, i.due_date,
	COALESCE(i.status, 'Draft'), COALESCE(i.total_amount, 0), i.notes, COALESCE(i.created_at, '')`

func (r *invoiceRepository) List(ctx context.Context, businessID int64) ([]domain.Invoice, error) {
	const query = `
	SELECT ` + invoiceColumns + `
	FROM invoices i
	JOIN clients c ON i.client_id = c.id
	WHERE i.business_id = ?
	ORDER BY i.date DESC, i.id DESC
	`

	invoices := []domain.Invoice{}
	err := r.db.Do(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, businessID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			inv, err := scanInvoice(rows)
			if err != nil {
				return err
			}
			invoices = append(invoices, *inv)
		}
		return rows.Err()
	})
	return invoices, err
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	const query = `
	SELECT ` + invoiceColumns + `
	FROM invoices i
	LEFT JOIN clients c ON i.client_id = c.id
	WHERE i.id = ?
	`

	var inv *domain.Invoice
	err := r.db.Do(ctx, func(db *sql.DB) error {
		var err error
		if inv, err = scanInvoice(db.QueryRowContext(ctx, query, id)); err != nil {
			return err
		}
		inv.Items, err = queryItems(ctx, db, id)
		return err
	})
	return inv, err
}

func (r *invoiceRepository) Items(ctx context.Context, invoiceID int64) ([]domain.InvoiceItem, error) {
	var items []domain.InvoiceItem
	err := r.db.Do(ctx, func(db *sql.DB) error {
		var err error
		items, err = queryItems(ctx, db, invoiceID)
		return err
	})
	return items, err
}

// Create stores the header and every item in one transaction. Totals are always derived
// from the items, never taken from the caller.
func (r *invoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	if invoice == nil {
		return nil, domain.ErrInvalidPayload
	}
	invoice.Recalculate()

	const headerQuery = `
	INSERT INTO invoices (business_id, client_id, invoice_number, date, due_date, status, total_amount, notes)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	RETURNING id, created_at
	`
	const itemQuery = `
	INSERT INTO invoice_items (invoice_id, description, quantity, unit_price, amount)
	VALUES (?, ?, ?, ?, ?)
	RETURNING id
	`

	err := r.db.InTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, headerQuery,
			invoice.BusinessID,
			invoice.ClientID,
			invoice.InvoiceNumber,
			invoice.Date,
			nullString(invoice.DueDate),
			invoice.Status,
			money(invoice.TotalAmount),
			nullString(invoice.Notes),
		).Scan(&invoice.ID, &invoice.CreatedAt); err != nil {
			return classify(err)
		}

		stmt, err := tx.PrepareContext(ctx, itemQuery)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i := range invoice.Items {
			item := &invoice.Items[i]
			item.InvoiceID = invoice.ID
			if err := stmt.QueryRowContext(ctx,
				item.InvoiceID,
				item.Description,
				money(item.Quantity),
				money(item.UnitPrice),
				money(item.Amount),
			).Scan(&item.ID); err != nil {
				return fmt.Errorf("insert item %d: %w", i, classify(err))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// Delete removes the items and then the header in one transaction.
func (r *invoiceRepository) Delete(ctx context.Context, id int64) error {
	return r.db.InTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM invoice_items WHERE invoice_id = ?`, id); err != nil {
			return classify(err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
		if err != nil {
			return classify(err)
		}
		return affected(res, domain.ErrInvoiceNotFound)
	})
}

func (r *invoiceRepository) MarkPaid(ctx context.Context, id int64, date string) (*domain.Transaction, error) {
	var txn *domain.Transaction
	err := r.db.InTx(ctx, func(tx *sql.Tx) error {
		var (
			inv    domain.Invoice
			status sql.NullString
		)
		if err := tx.QueryRowContext(ctx,
			`SELECT business_id, client_id, invoice_number, status, COALESCE(total_amount, 0) FROM invoices WHERE id = ?`, id,
		).Scan(&inv.BusinessID, &inv.ClientID, &inv.InvoiceNumber, &status, &inv.TotalAmount); err != nil {
			return noRows(err, domain.ErrInvoiceNotFound)
		}
		inv.Status = status.String
		if inv.IsPaid() {
			return domain.ErrInvoiceAlreadyPaid
		}

		if _, err := tx.ExecContext(ctx, `UPDATE invoices SET status = ? WHERE id = ?`, domain.InvoicePaid, id); err != nil {
			return err
		}

		var accountID sql.NullInt64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM accounts WHERE business_id = ? AND name = ? ORDER BY id LIMIT 1`,
			inv.BusinessID, domain.SalesAccountName,
		).Scan(&accountID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		clientID := inv.ClientID
		txn = &domain.Transaction{
			BusinessID:  inv.BusinessID,
			Date:        date,
			Description: "Invoice Payment: " + inv.InvoiceNumber,
			Amount:      inv.TotalAmount,
			Type:        domain.TransactionIncome,
			AccountID:   idPtr(accountID),
			ClientID:    &clientID,
		}
		return insertTransaction(ctx, tx, txn)
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func queryItems(ctx context.Context, q queryer, invoiceID int64) ([]domain.InvoiceItem, error) {
	const query = `
	SELECT id, invoice_id, description, COALESCE(quantity, 1), COALESCE(unit_price, 0), COALESCE(amount, 0)
	FROM invoice_items
	WHERE invoice_id = ?
	ORDER BY id
	`
	rows, err := q.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.InvoiceItem{}
	for rows.Next() {
		var item domain.InvoiceItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Description, &item.Quantity, &item.UnitPrice, &item.Amount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanInvoice(row scanner) (*domain.Invoice, error) {
	var (
		inv            domain.Invoice
		dueDate, notes sql.NullString
	)
	if err := row.Scan(
		&inv.ID,
		&inv.BusinessID,
		&inv.ClientID,
		&inv.ClientName,
		&inv.InvoiceNumber,
		&inv.Date,
		&dueDate,
		&inv.Status,
		&inv.TotalAmount,
		&notes,
		&inv.CreatedAt,
	); err != nil {
		return nil, noRows(err, domain.ErrInvoiceNotFound)
	}
	inv.DueDate = dueDate.String
	inv.Notes = notes.String
	return &inv, nil
}
