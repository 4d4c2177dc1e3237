package domain

import "github.com/shopspring/decimal"

const (
	AccountIncome    = "Income"
	AccountExpense   = "Expense"
	AccountAsset     = "Asset"
	AccountLiability = "Liability"
	AccountEquity    = "Equity"
)

const (
	TransactionIncome  = "Income"
	TransactionExpense = "Expense"
)

// SalesAccountName is the account paid invoices are booked against.
const SalesAccountName = "Sales"

// Account is a chart-of-accounts entry.
type Account struct {
	ID          int64  `json:"id"`
	BusinessID  int64  `json:"business_id" validate:"required_without=ID"`
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=Income Expense Asset Liability Equity"`
	Code        string `json:"code"`
	TaxCategory string `json:"tax_category"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Transaction is a single money movement. Amount is unsigned; Type carries the direction.
type Transaction struct {
	ID          int64           `json:"id"`
	BusinessID  int64           `json:"business_id" validate:"required"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	Type        string          `json:"type" validate:"required,oneof=Income Expense"`
	AccountID   *int64          `json:"account_id"`
	ClientID    *int64          `json:"client_id"`
	AccountName string          `json:"account_name,omitempty"`
	ClientName  string          `json:"client_name,omitempty"`
	CreatedAt   string          `json:"created_at,omitempty"`
}
