package sqlite

import (
	"context"
	"database/sql"

	"github.com/fastygo/backoffice/domain"
	infra "github.com/fastygo/backoffice/internal/infrastructure/sqlite"
	"github.com/fastygo/backoffice/repository"
)

type clientDocumentRepository struct {
	db *infra.Manager
}

// NewClientDocumentRepository returns a SQLite-backed ClientDocumentRepository.
func NewClientDocumentRepository(db *infra.Manager) repository.ClientDocumentRepository {
	return &clientDocumentRepository{db: db}
}

func (r *clientDocumentRepository) List(ctx context.Context, clientID int64) ([]domain.ClientDocument, error) {
	const query = `
	SELECT id, client_id, name, type, notes, file_path, COALESCE(created_at, '')
	FROM client_documents
	WHERE client_id = ?
	ORDER BY created_at DESC, id DESC
	`

	docs := []domain.ClientDocument{}
	err := r.db.Do(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, clientID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				d                     domain.ClientDocument
				docType, notes, fpath sql.NullString
			)
			if err := rows.Scan(&d.ID, &d.ClientID, &d.Name, &docType, &notes, &fpath, &d.CreatedAt); err != nil {
				return err
			}
			d.Type, d.Notes, d.FilePath = docType.String, notes.String, fpath.String
			docs = append(docs, d)
		}
		return rows.Err()
	})
	return docs, err
}

func (r *clientDocumentRepository) Create(ctx context.Context, doc *domain.ClientDocument) (*domain.ClientDocument, error) {
	if doc == nil {
		return nil, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO client_documents (client_id, name, type, notes, file_path)
	VALUES (?, ?, ?, ?, ?)
	RETURNING id, created_at
	`
	err := r.db.Do(ctx, func(db *sql.DB) error {
		return classify(db.QueryRowContext(ctx, query,
			doc.ClientID,
			doc.Name,
			nullString(doc.Type),
			nullString(doc.Notes),
			nullString(doc.FilePath),
		).Scan(&doc.ID, &doc.CreatedAt))
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *clientDocumentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.Do(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, `DELETE FROM client_documents WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res, domain.ErrDocumentNotFound)
	})
}
