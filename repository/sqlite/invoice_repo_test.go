package sqlite

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/backoffice/domain"
)

func sampleInvoice(clientID int64) *domain.Invoice {
	return &domain.Invoice{
		BusinessID:    1,
		ClientID:      clientID,
		InvoiceNumber: "INV-001",
		Date:          "2026-03-10",
		DueDate:       "2026-04-10",
		TotalAmount:   decimal.NewFromInt(1), // ignored
		Items: []domain.InvoiceItem{
			{Description: "Design", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("150.25"), Amount: decimal.NewFromInt(7)},
			{Description: "Hosting", Quantity: decimal.RequireFromString("0.5"), UnitPrice: decimal.NewFromInt(40)},
		},
	}
}

func TestInvoiceCreateRecomputesTotal(t *testing.T) {
	m := newTestDB(t)
	client := seedClient(t, m, "Buyer")
	repo := NewInvoiceRepository(m)
	ctx := context.Background()

	inv, err := repo.Create(ctx, sampleInvoice(client.ID))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("470.75").Equal(inv.TotalAmount), inv.TotalAmount.String())
	assert.Equal(t, domain.InvoiceDraft, inv.Status)

	stored, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("470.75").Equal(stored.TotalAmount))
	assert.Equal(t, "Buyer", stored.ClientName)
	require.Len(t, stored.Items, 2)
	assert.True(t, decimal.RequireFromString("450.75").Equal(stored.Items[0].Amount))
	assert.True(t, decimal.NewFromInt(20).Equal(stored.Items[1].Amount))

	list, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "INV-001", list[0].InvoiceNumber)
}

func TestInvoiceDeleteRemovesHeaderAndItems(t *testing.T) {
	m := newTestDB(t)
	client := seedClient(t, m, "Buyer")
	repo := NewInvoiceRepository(m)
	ctx := context.Background()

	inv, err := repo.Create(ctx, sampleInvoice(client.ID))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, inv.ID))

	assert.Equal(t, 0, countOf(t, m, `SELECT COUNT(*) FROM invoices WHERE id = ?`, inv.ID))
	assert.Equal(t, 0, countOf(t, m, `SELECT COUNT(*) FROM invoice_items WHERE invoice_id = ?`, inv.ID))
	assert.True(t, domain.IsDomainError(repo.Delete(ctx, inv.ID), domain.ErrCodeNotFound))
}

func TestInvoiceCreateIsAtomic(t *testing.T) {
	m := newTestDB(t)
	client := seedClient(t, m, "Buyer")
	execSQL(t, m, `
	CREATE TRIGGER reject_hosting BEFORE INSERT ON invoice_items
	WHEN NEW.description = 'Hosting'
	BEGIN SELECT RAISE(ABORT, 'item rejected'); END`)

	_, err := NewInvoiceRepository(m).Create(context.Background(), sampleInvoice(client.ID))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item rejected")

	assert.Equal(t, 0, countOf(t, m, `SELECT COUNT(*) FROM invoices`))
	assert.Equal(t, 0, countOf(t, m, `SELECT COUNT(*) FROM invoice_items`))
}

func TestInvoiceDeleteIsAtomic(t *testing.T) {
	m := newTestDB(t)
	client := seedClient(t, m, "Buyer")
	repo := NewInvoiceRepository(m)
	ctx := context.Background()

	inv, err := repo.Create(ctx, sampleInvoice(client.ID))
	require.NoError(t, err)
	execSQL(t, m, `
	CREATE TRIGGER keep_invoices BEFORE DELETE ON invoices
	BEGIN SELECT RAISE(ABORT, 'locked'); END`)

	require.Error(t, repo.Delete(ctx, inv.ID))
	assert.Equal(t, 1, countOf(t, m, `SELECT COUNT(*) FROM invoices`))
	assert.Equal(t, 2, countOf(t, m, `SELECT COUNT(*) FROM invoice_items`))
}

func TestMarkPaidBooksIncome(t *testing.T) {
	m := newTestDB(t)
	client := seedClient(t, m, "Buyer")
	repo := NewInvoiceRepository(m)
	ctx := context.Background()

	inv, err := repo.Create(ctx, sampleInvoice(client.ID))
	require.NoError(t, err)

	txn, err := repo.MarkPaid(ctx, inv.ID, "2026-03-15")
	require.NoError(t, err)
	require.NotNil(t, txn.AccountID)
	assert.Equal(t, domain.TransactionIncome, txn.Type)
	assert.Equal(t, "Invoice Payment: INV-001", txn.Description)
	assert.True(t, inv.TotalAmount.Equal(txn.Amount))

	stored, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, stored.Status)

	assert.Equal(t, 1, countOf(t, m,
		`SELECT COUNT(*) FROM transactions t JOIN accounts a ON t.account_id = a.id
		 WHERE a.name = 'Sales' AND t.type = 'Income' AND t.date = '2026-03-15' AND t.amount = 470.75 AND t.client_id = ?`, client.ID))

	_, err = repo.MarkPaid(ctx, inv.ID, "2026-03-16")
	assert.ErrorIs(t, err, domain.ErrInvoiceAlreadyPaid)
	assert.Equal(t, 1, countOf(t, m, `SELECT COUNT(*) FROM transactions`))

	_, err = repo.MarkPaid(ctx, 9999, "2026-03-16")
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestMarkPaidWithoutSalesAccount(t *testing.T) {
	m := newTestDB(t)
	client := seedClient(t, m, "Buyer")
	execSQL(t, m, `DELETE FROM accounts WHERE name = 'Sales'`)
	repo := NewInvoiceRepository(m)
	ctx := context.Background()

	inv, err := repo.Create(ctx, sampleInvoice(client.ID))
	require.NoError(t, err)

	txn, err := repo.MarkPaid(ctx, inv.ID, "2026-03-15")
	require.NoError(t, err)
	assert.Nil(t, txn.AccountID)
	assert.Equal(t, 1, countOf(t, m, `SELECT COUNT(*) FROM transactions WHERE account_id IS NULL`))
}

func TestMarkPaidIsAtomic(t *testing.T) {
	m := newTestDB(t)
	client := seedClient(t, m, "Buyer")
	repo := NewInvoiceRepository(m)
	ctx := context.Background()

	inv, err := repo.Create(ctx, sampleInvoice(client.ID))
	require.NoError(t, err)
	execSQL(t, m, `
	CREATE TRIGGER no_income BEFORE INSERT ON transactions
	BEGIN SELECT RAISE(ABORT, 'ledger closed'); END`)

	_, err = repo.MarkPaid(ctx, inv.ID, "2026-03-15")
	require.Error(t, err)

	stored, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceDraft, stored.Status)
}
