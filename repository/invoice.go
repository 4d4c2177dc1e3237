package repository

import (
	"context"

	"github.com/fastygo/backoffice/domain"
)

// InvoiceRepository persists invoices with their line items. Create and Delete touch the
// header and the items atomically.
type InvoiceRepository interface {
	List(ctx context.Context, businessID int64) ([]domain.Invoice, error)
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	Items(ctx context.Context, invoiceID int64) ([]domain.InvoiceItem, error)
	Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
	Delete(ctx context.Context, id int64) error
	// MarkPaid flags the invoice Paid and books the income transaction dated on date, in
	// one transaction. The returned transaction has a nil AccountID when the business has
	// no Sales account.
	MarkPaid(ctx context.Context, id int64, date string) (*domain.Transaction, error)
}
