package invoice

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/repository"
)

type UseCase struct {
	invoices repository.InvoiceRepository
	logger   *zap.Logger
	now      func() time.Time
}

func New(invoices repository.InvoiceRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		invoices: invoices,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the clock used to date payments.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

func (uc *UseCase) ListInvoices(ctx context.Context, businessID int64) ([]domain.Invoice, error) {
	return uc.invoices.List(ctx, businessID)
}

func (uc *UseCase) Details(ctx context.Context, invoiceID int64) (*domain.InvoiceDetails, error) {
	items, err := uc.invoices.Items(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return &domain.InvoiceDetails{InvoiceID: invoiceID, Items: items}, nil
}

// SaveInvoice stores a new invoice with its items. Line amounts and the total are
// recomputed from quantities and prices.
func (uc *UseCase) SaveInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	if inv == nil {
		return nil, domain.ErrInvalidPayload
	}
	inv.ID = 0
	if err := domain.Validate(inv); err != nil {
		return nil, err
	}
	inv.Recalculate()

	saved, err := uc.invoices.Create(ctx, inv)
	if err != nil {
		uc.logger.Error("invoice save failed", zap.String("invoice_number", inv.InvoiceNumber), zap.Error(err))
		return nil, err
	}
	uc.logger.Info("invoice saved",
		zap.Int64("invoice_id", saved.ID),
		zap.String("total", saved.TotalAmount.String()),
		zap.Int("items", len(saved.Items)))
	return saved, nil
}

func (uc *UseCase) DeleteInvoice(ctx context.Context, id int64) error {
	return uc.invoices.Delete(ctx, id)
}

// MarkPaid settles the invoice and books the payment as income dated today.
func (uc *UseCase) MarkPaid(ctx context.Context, id int64) (*domain.Transaction, error) {
	txn, err := uc.invoices.MarkPaid(ctx, id, domain.FormatDate(uc.now()))
	if err != nil {
		return nil, err
	}
	if txn.AccountID == nil {
		uc.logger.Warn("no Sales account, payment booked without account",
			zap.Int64("invoice_id", id),
			zap.Int64("business_id", txn.BusinessID))
	}
	return txn, nil
}
