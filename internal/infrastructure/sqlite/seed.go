package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastygo/backoffice/domain"
)

const (
	defaultBusinessName = "My Business"
	defaultCurrency     = "USD"
)

type defaultAccount struct {
	name        string
	accountType string
	taxCategory string
}

var defaultAccounts = []defaultAccount{
	{"Sales", domain.AccountIncome, ""},
	{"Service Revenue", domain.AccountIncome, ""},
	{"Advertising", domain.AccountExpense, "Advertising"},
	{"Bank Fees", domain.AccountExpense, "Bank charges"},
	{"Office Supplies", domain.AccountExpense, "Office expenses"},
	{"Rent", domain.AccountExpense, "Rent or lease"},
	{"Utilities", domain.AccountExpense, "Utilities"},
	{"Travel", domain.AccountExpense, "Travel"},
	{"Cash on Hand", domain.AccountAsset, ""},
	{"Bank Account", domain.AccountAsset, ""},
}

// taxCategories maps account names onto tax labels. It covers names users commonly add
// next to the defaults.
var taxCategories = map[string]string{
	"Advertising":     "Advertising",
	"Bank Fees":       "Bank charges",
	"Office Supplies": "Office expenses",
	"Rent":            "Rent or lease",
	"Utilities":       "Utilities",
	"Travel":          "Travel",
	"Legal Fees":      "Legal and professional services",
	"Software":        "Office expenses",
}

// DefaultSettings are written once into an empty settings table.
var DefaultSettings = domain.Settings{
	"business_name": defaultBusinessName,
	"address":       "123 Main St, City, State",
	"phone":         "555-1234",
	"email":         "contact@example.com",
	"currency":      defaultCurrency,
}

func isEmpty(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, table string) (bool, error) {
	var n int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

func seedBusiness(ctx context.Context, db *sql.DB) error {
	empty, err := isEmpty(ctx, db, "businesses")
	if err != nil || !empty {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT INTO businesses (name, currency) VALUES (?, ?)`, defaultBusinessName, defaultCurrency)
	return err
}

func seedAccounts(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	empty, err := isEmpty(ctx, tx, "accounts")
	if err != nil || !empty {
		return err
	}

	var businessID sql.NullInt64
	if err := tx.QueryRowContext(ctx, `SELECT MIN(id) FROM businesses`).Scan(&businessID); err != nil {
		return err
	}
	if !businessID.Valid {
		return errors.New("no business to attach default accounts to")
	}

	for _, acc := range defaultAccounts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (business_id, name, type, tax_category) VALUES (?, ?, ?, ?)`,
			businessID.Int64, acc.name, acc.accountType, nullString(acc.taxCategory),
		); err != nil {
			return fmt.Errorf("insert account %q: %w", acc.name, err)
		}
	}
	return tx.Commit()
}

func seedSettings(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	empty, err := isEmpty(ctx, tx, "settings")
	if err != nil || !empty {
		return err
	}
	for key, value := range DefaultSettings {
		if _, err := tx.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)`, key, value); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// mapTaxCategories labels accounts of a database that predates the tax_category column.
func mapTaxCategories(ctx context.Context, db *sql.DB) error {
	for name, category := range taxCategories {
		if _, err := db.ExecContext(ctx,
			`UPDATE accounts SET tax_category = ? WHERE name = ? AND tax_category IS NULL`,
			category, name,
		); err != nil {
			return fmt.Errorf("map tax category for %q: %w", name, err)
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
