package sqlite

import (
	"context"
	"database/sql"

	"github.com/fastygo/backoffice/domain"
	infra "github.com/fastygo/backoffice/internal/infrastructure/sqlite"
	"github.com/fastygo/backoffice/repository"
)

type documentRepository struct {
	db *infra.Manager
}

// NewDocumentRepository returns a SQLite-backed DocumentRepository.
func NewDocumentRepository(db *infra.Manager) repository.DocumentRepository {
	return &documentRepository{db: db}
}

const documentColumns = `id, business_id, name, type, notes, expiry_date, COALESCE(status, 'Active'), COALESCE(created_at, '')`

func (r *documentRepository) List(ctx context.Context, businessID int64) ([]domain.Document, error) {
	const query = `SELECT ` + documentColumns + ` FROM documents WHERE business_id = ? ORDER BY type, name`

	var docs []domain.Document
	err := r.db.Do(ctx, func(db *sql.DB) error {
		var err error
		docs, err = queryDocuments(ctx, db, query, businessID)
		return err
	})
	return docs, err
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	if doc == nil {
		return nil, domain.ErrInvalidPayload
	}
	if doc.Status == "" {
		doc.Status = "Active"
	}

	const query = `
	INSERT INTO documents (business_id, name, type, notes, expiry_date, status)
	VALUES (?, ?, ?, ?, ?, ?)
	RETURNING id, created_at
	`
	err := r.db.Do(ctx, func(db *sql.DB) error {
		return classify(db.QueryRowContext(ctx, query,
			doc.BusinessID,
			doc.Name,
			doc.Type,
			nullString(doc.Notes),
			nullString(doc.ExpiryDate),
			doc.Status,
		).Scan(&doc.ID, &doc.CreatedAt))
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *documentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.Do(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res, domain.ErrDocumentNotFound)
	})
}

func queryDocuments(ctx context.Context, q queryer, query string, args ...interface{}) ([]domain.Document, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		var (
			d             domain.Document
			notes, expiry sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.BusinessID, &d.Name, &d.Type, &notes, &expiry, &d.Status, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.Notes = notes.String
		d.ExpiryDate = expiry.String
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
