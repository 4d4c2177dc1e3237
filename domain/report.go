package domain

import "github.com/shopspring/decimal"

// DashboardStats is the per-business overview shown on the home screen.
type DashboardStats struct {
	Forecast          decimal.Decimal `json:"forecast"`
	Revenue           decimal.Decimal `json:"revenue"`
	Expenses          decimal.Decimal `json:"expenses"`
	Profit            decimal.Decimal `json:"profit"`
	Clients           int             `json:"clients"`
	Leads             int             `json:"leads"`
	ForecastedClients int             `json:"forecasted_clients"`
}

type IncomeStatement struct {
	Income    decimal.Decimal `json:"income"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetProfit decimal.Decimal `json:"netProfit"`
}

type BalanceSheet struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	Equity      decimal.Decimal `json:"equity"`
}

// FinancialReport is a simplified income statement and balance sheet. The balance sheet
// is not double-entry: assets and equity both equal net profit and liabilities are zero.
type FinancialReport struct {
	IncomeStatement IncomeStatement `json:"incomeStatement"`
	BalanceSheet    BalanceSheet    `json:"balanceSheet"`
}

// NewFinancialReport derives both statements from income and expense totals.
func NewFinancialReport(income, expenses decimal.Decimal) FinancialReport {
	net := income.Sub(expenses)
	return FinancialReport{
		IncomeStatement: IncomeStatement{Income: income, Expenses: expenses, NetProfit: net},
		BalanceSheet:    BalanceSheet{Assets: net, Liabilities: decimal.Zero, Equity: net},
	}
}

// TaxLine is the expense total of one tax category.
type TaxLine struct {
	TaxCategory string          `json:"tax_category"`
	Total       decimal.Decimal `json:"total"`
}
