package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/fastygo/backoffice/domain"
)

const defaultLimit = 100

type scanner interface {
	Scan(dest ...interface{}) error
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullID(id *int64) sql.NullInt64 {
	if id == nil || *id == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func idPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	id := n.Int64
	return &id
}

// money binds a decimal to a REAL column.
func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// normalizeLimit maps zero to the default page; negative values disable the limit, which
// SQLite expresses as LIMIT -1.
func normalizeLimit(limit int) int {
	switch {
	case limit == 0:
		return defaultLimit
	case limit < 0:
		return -1
	}
	return limit
}

func noRows(err error, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return err
}

// affected turns a statement that matched no row into notFound.
func affected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// classify turns SQLite constraint failures into domain errors so callers can tell bad
// input from storage faults.
func classify(err error) error {
	var sqlErr sqlite3.Error
	if !errors.As(err, &sqlErr) || sqlErr.Code != sqlite3.ErrConstraint {
		return err
	}
	switch sqlErr.ExtendedCode {
	case sqlite3.ErrConstraintNotNull, sqlite3.ErrConstraintCheck:
		return domain.WrapError(domain.ErrCodeInvalid, "constraint violated", err)
	case sqlite3.ErrConstraintForeignKey:
		return domain.WrapError(domain.ErrCodeConflict, "referenced record missing or still in use", err)
	default:
		return domain.WrapError(domain.ErrCodeConflict, "constraint violated", err)
	}
}
