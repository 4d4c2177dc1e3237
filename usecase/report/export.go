package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/repository"
)

const (
	sheetSummary      = "Summary"
	sheetTransactions = "Transactions"
	sheetTax          = "Tax"
)

// ExportResult describes a written workbook.
type ExportResult struct {
	Path         string `json:"path"`
	Transactions int    `json:"transactions"`
}

// Export writes an .xlsx workbook with the financial summary, every transaction of the
// period and the tax breakdown.
func (uc *UseCase) Export(ctx context.Context, businessID int64, period domain.Period, path string) (*ExportResult, error) {
	if path == "" {
		return nil, &domain.Error{Code: domain.ErrCodeInvalid, Message: "invalid fields: path", Fields: map[string]string{"path": "required"}}
	}

	summary, err := uc.FinancialReport(ctx, businessID, period)
	if err != nil {
		return nil, err
	}
	txns, err := uc.transactions.List(ctx, repository.TransactionFilter{BusinessID: businessID, Period: period, Limit: -1})
	if err != nil {
		return nil, err
	}
	tax, err := uc.reports.TaxTotals(ctx, businessID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}
	if err := writeSummary(f, period, summary); err != nil {
		return nil, err
	}
	if err := writeTransactions(f, txns); err != nil {
		return nil, err
	}
	if err := writeTax(f, tax); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("save workbook: %w", err)
	}

	uc.logger.Info("report exported", zap.String("path", path), zap.Int("transactions", len(txns)))
	return &ExportResult{Path: path, Transactions: len(txns)}, nil
}

func writeSummary(f *excelize.File, period domain.Period, r *domain.FinancialReport) error {
	label := "All time"
	if from, _, ok := period.Bounds(); ok {
		label = from[:7]
	}
	rows := [][]interface{}{
		{"Period", label},
		{"Income", r.IncomeStatement.Income.InexactFloat64()},
		{"Expenses", r.IncomeStatement.Expenses.InexactFloat64()},
		{"Net profit", r.IncomeStatement.NetProfit.InexactFloat64()},
		{"Assets", r.BalanceSheet.Assets.InexactFloat64()},
		{"Liabilities", r.BalanceSheet.Liabilities.InexactFloat64()},
		{"Equity", r.BalanceSheet.Equity.InexactFloat64()},
	}
	return writeRows(f, sheetSummary, rows)
}

func writeTransactions(f *excelize.File, txns []domain.Transaction) error {
	if _, err := f.NewSheet(sheetTransactions); err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(txns)+1)
	rows = append(rows, []interface{}{"Date", "Description", "Type", "Amount", "Account", "Client"})
	for _, t := range txns {
		rows = append(rows, []interface{}{t.Date, t.Description, t.Type, t.Amount.InexactFloat64(), t.AccountName, t.ClientName})
	}
	return writeRows(f, sheetTransactions, rows)
}

func writeTax(f *excelize.File, lines []domain.TaxLine) error {
	if _, err := f.NewSheet(sheetTax); err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(lines)+1)
	rows = append(rows, []interface{}{"Tax category", "Total"})
	for _, l := range lines {
		rows = append(rows, []interface{}{l.TaxCategory, l.Total.InexactFloat64()})
	}
	return writeRows(f, sheetTax, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
