package sqlite

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/repository"
)

func TestForecastExcludesConvertedLeads(t *testing.T) {
	m := newTestDB(t)
	leads := NewLeadRepository(m)
	ctx := context.Background()

	_, err := leads.Create(ctx, &domain.Lead{BusinessID: 1, Name: "A", ExpectedValue: decimal.NewFromInt(1000), Probability: 50, Status: domain.LeadStatusNew})
	require.NoError(t, err)
	_, err = leads.Create(ctx, &domain.Lead{BusinessID: 1, Name: "B", ExpectedValue: decimal.NewFromInt(2000), Probability: 100, Status: domain.LeadStatusConverted})
	require.NoError(t, err)

	reports := NewReportRepository(m)
	forecast, err := reports.Forecast(ctx, 1)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(forecast), forecast.String())

	open, err := reports.CountOpenLeads(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, open)

	// The converted lead is above the hot-lead threshold.
	forecasted, err := reports.CountForecastedClients(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, forecasted)
}

func TestTransactionSumsAndTotals(t *testing.T) {
	m := newTestDB(t)
	txns := NewTransactionRepository(m)
	ctx := context.Background()

	for _, txn := range []domain.Transaction{
		{BusinessID: 1, Date: "2026-02-28", Description: "old sale", Amount: decimal.NewFromInt(100), Type: domain.TransactionIncome},
		{BusinessID: 1, Date: "2026-03-01", Description: "sale", Amount: decimal.NewFromInt(300), Type: domain.TransactionIncome},
		{BusinessID: 1, Date: "2026-03-31", Description: "rent", Amount: decimal.NewFromInt(120), Type: domain.TransactionExpense},
		{BusinessID: 1, Date: "2026-04-01", Description: "next month", Amount: decimal.NewFromInt(50), Type: domain.TransactionExpense},
	} {
		txn := txn
		_, err := txns.Create(ctx, &txn)
		require.NoError(t, err)
	}

	reports := NewReportRepository(m)
	march := repository.DateRange{From: "2026-03-01", To: "2026-04-01"}

	income, expenses, err := reports.Totals(ctx, 1, march)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(income))
	assert.True(t, decimal.NewFromInt(120).Equal(expenses))

	income, expenses, err = reports.Totals(ctx, 1, repository.DateRange{})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(400).Equal(income))
	assert.True(t, decimal.NewFromInt(170).Equal(expenses))

	since, err := reports.SumTransactions(ctx, 1, domain.TransactionExpense, repository.DateRange{From: "2026-03-01"})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(170).Equal(since))

	empty, err := reports.SumTransactions(ctx, 2, domain.TransactionIncome, repository.DateRange{})
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	listed, err := txns.List(ctx, repository.TransactionFilter{BusinessID: 1, Period: domain.Period{Month: 3, Year: 2026}})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "2026-03-31", listed[0].Date)
	assert.Equal(t, "2026-03-01", listed[1].Date)
}

func TestTransactionListCapsAndJoins(t *testing.T) {
	m := newTestDB(t)
	client := seedClient(t, m, "Payer")
	txns := NewTransactionRepository(m)
	ctx := context.Background()

	rent, err := NewAccountRepository(m).FindByName(ctx, 1, "Rent")
	require.NoError(t, err)

	execSQL(t, m, `
	WITH RECURSIVE n(i) AS (SELECT 1 UNION ALL SELECT i + 1 FROM n WHERE i < 120)
	INSERT INTO transactions (business_id, date, description, amount, type) SELECT 1, '2026-01-15', 'bulk', 1, 'Expense' FROM n`)
	_, err = txns.Create(ctx, &domain.Transaction{
		BusinessID: 1, Date: "2026-05-01", Description: "joined", Amount: decimal.NewFromInt(9),
		Type: domain.TransactionExpense, AccountID: &rent.ID, ClientID: &client.ID,
	})
	require.NoError(t, err)

	listed, err := txns.List(ctx, repository.TransactionFilter{BusinessID: 1})
	require.NoError(t, err)
	assert.Len(t, listed, 100)
	assert.Equal(t, "Rent", listed[0].AccountName)
	assert.Equal(t, "Payer", listed[0].ClientName)
	assert.Nil(t, listed[1].AccountID)

	all, err := txns.List(ctx, repository.TransactionFilter{BusinessID: 1, Limit: -1})
	require.NoError(t, err)
	assert.Len(t, all, 121)
}

func TestTaxTotalsGroupByCategory(t *testing.T) {
	m := newTestDB(t)
	ctx := context.Background()
	accounts := NewAccountRepository(m)
	txns := NewTransactionRepository(m)

	id := func(name string) *int64 {
		a, err := accounts.FindByName(ctx, 1, name)
		require.NoError(t, err)
		return &a.ID
	}
	execSQL(t, m, `INSERT INTO accounts (business_id, name, type) VALUES (1, 'Misc', 'Expense')`)

	for _, txn := range []domain.Transaction{
		{Amount: decimal.NewFromInt(100), Type: domain.TransactionExpense, AccountID: id("Rent")},
		{Amount: decimal.NewFromInt(250), Type: domain.TransactionExpense, AccountID: id("Rent")},
		{Amount: decimal.NewFromInt(40), Type: domain.TransactionExpense, AccountID: id("Travel")},
		{Amount: decimal.NewFromInt(999), Type: domain.TransactionExpense, AccountID: id("Misc")},
		{Amount: decimal.NewFromInt(500), Type: domain.TransactionIncome, AccountID: id("Advertising")},
		{Amount: decimal.NewFromInt(70), Type: domain.TransactionExpense},
	} {
		txn := txn
		txn.BusinessID, txn.Date, txn.Description = 1, "2026-01-01", "x"
		_, err := txns.Create(ctx, &txn)
		require.NoError(t, err)
	}

	lines, err := NewReportRepository(m).TaxTotals(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Rent or lease", lines[0].TaxCategory)
	assert.True(t, decimal.NewFromInt(350).Equal(lines[0].Total))
	assert.Equal(t, "Travel", lines[1].TaxCategory)
	assert.True(t, decimal.NewFromInt(40).Equal(lines[1].Total))
}

func TestExpiringDocumentsWindow(t *testing.T) {
	m := newTestDB(t)
	docs := NewDocumentRepository(m)
	ctx := context.Background()

	for name, expiry := range map[string]string{
		"today":   "2026-06-01",
		"plus29":  "2026-06-30",
		"plus30":  "2026-07-01",
		"plus31":  "2026-07-02",
		"expired": "2026-05-31",
		"never":   "",
	} {
		_, err := docs.Create(ctx, &domain.Document{BusinessID: 1, Name: name, Type: "License", ExpiryDate: expiry})
		require.NoError(t, err)
	}

	alerts, err := NewReportRepository(m).ExpiringDocuments(ctx, 1, "2026-06-01", "2026-07-01")
	require.NoError(t, err)

	names := make([]string, 0, len(alerts))
	for _, d := range alerts {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"today", "plus29", "plus30"}, names)

	listed, err := docs.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, listed, 6)
}
