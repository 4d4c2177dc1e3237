package sqlite

import (
	"context"
	"database/sql"

	"github.com/fastygo/backoffice/domain"
	infra "github.com/fastygo/backoffice/internal/infrastructure/sqlite"
	"github.com/fastygo/backoffice/repository"
)

type contentRepository struct {
	db *infra.Manager
}

// NewContentRepository returns a SQLite-backed ContentRepository.
func NewContentRepository(db *infra.Manager) repository.ContentRepository {
	return &contentRepository{db: db}
}

const contentColumns = `id, client_id, platform, title, caption, hashtags, COALESCE(status, 'IDEA'),
	scheduled_date, posted_date, cta_hook, media_path, notes, COALESCE(created_at, ''), COALESCE(updated_at, '')`

func (r *contentRepository) List(ctx context.Context, clientID int64) ([]domain.ContentItem, error) {
	const query = `SELECT ` + contentColumns + ` FROM content_items WHERE client_id = ? ORDER BY created_at DESC, id DESC`

	items := []domain.ContentItem{}
	err := r.db.Do(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, clientID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scanContent(rows)
			if err != nil {
				return err
			}
			items = append(items, *item)
		}
		return rows.Err()
	})
	return items, err
}

func (r *contentRepository) GetByID(ctx context.Context, id int64) (*domain.ContentItem, error) {
	var item *domain.ContentItem
	err := r.db.Do(ctx, func(db *sql.DB) error {
		var err error
		item, err = getContent(ctx, db, id)
		return err
	})
	return item, err
}

func (r *contentRepository) Create(ctx context.Context, item *domain.ContentItem) (*domain.ContentItem, error) {
	if item == nil {
		return nil, domain.ErrInvalidPayload
	}
	if item.Status == "" {
		item.Status = domain.ContentIdea
	}

	const query = `
	INSERT INTO content_items (client_id, platform, title, caption, hashtags, status, scheduled_date, posted_date, cta_hook, media_path, notes)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	RETURNING id
	`
	var created *domain.ContentItem
	err := r.db.InTx(ctx, func(tx *sql.Tx) error {
		var id int64
		if err := tx.QueryRowContext(ctx, query,
			item.ClientID,
			item.Platform,
			item.Title,
			nullString(item.Caption),
			nullString(item.Hashtags),
			item.Status,
			nullString(item.ScheduledDate),
			nullString(item.PostedDate),
			nullString(item.CTAHook),
			nullString(item.MediaPath),
			nullString(item.Notes),
		).Scan(&id); err != nil {
			return classify(err)
		}
		if err := appendContentActivity(ctx, tx, id, domain.ActivityContentCreated); err != nil {
			return err
		}
		var err error
		created, err = getContent(ctx, tx, id)
		return err
	})
	return created, err
}

// Update rewrites the editable fields and logs a status change when the status moved.
func (r *contentRepository) Update(ctx context.Context, item *domain.ContentItem) (*domain.ContentItem, error) {
	if item == nil {
		return nil, domain.ErrInvalidPayload
	}

	const query = `
	UPDATE content_items
	SET platform = ?,
		title = ?,
		caption = ?,
		hashtags = ?,
		status = ?,
		scheduled_date = ?,
		posted_date = ?,
		cta_hook = ?,
		media_path = ?,
		notes = ?,
		updated_at = CURRENT_TIMESTAMP
	WHERE id = ?
	`
	var updated *domain.ContentItem
	err := r.db.InTx(ctx, func(tx *sql.Tx) error {
		current, err := getContent(ctx, tx, item.ID)
		if err != nil {
			return err
		}
		if item.Status == "" {
			item.Status = current.Status
		}

		if _, err := tx.ExecContext(ctx, query,
			item.Platform,
			item.Title,
			nullString(item.Caption),
			nullString(item.Hashtags),
			item.Status,
			nullString(item.ScheduledDate),
			nullString(item.PostedDate),
			nullString(item.CTAHook),
			nullString(item.MediaPath),
			nullString(item.Notes),
			item.ID,
		); err != nil {
			return classify(err)
		}
		if item.Status != current.Status {
			if err := appendContentActivity(ctx, tx, item.ID, domain.StatusChange(item.Status)); err != nil {
				return err
			}
		}
		updated, err = getContent(ctx, tx, item.ID)
		return err
	})
	return updated, err
}

func (r *contentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.Do(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, `DELETE FROM content_items WHERE id = ?`, id)
		if err != nil {
			return classify(err)
		}
		return affected(res, domain.ErrContentNotFound)
	})
}

func (r *contentRepository) Activities(ctx context.Context, contentID int64) ([]domain.ContentActivity, error) {
	const query = `
	SELECT id, content_id, action, COALESCE(created_at, '')
	FROM content_activities
	WHERE content_id = ?
	ORDER BY created_at DESC, id DESC
	`

	activities := []domain.ContentActivity{}
	err := r.db.Do(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, contentID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var a domain.ContentActivity
			if err := rows.Scan(&a.ID, &a.ContentID, &a.Action, &a.CreatedAt); err != nil {
				return err
			}
			activities = append(activities, a)
		}
		return rows.Err()
	})
	return activities, err
}

func appendContentActivity(ctx context.Context, q queryer, contentID int64, action string) error {
	_, err := q.ExecContext(ctx, `INSERT INTO content_activities (content_id, action) VALUES (?, ?)`, contentID, action)
	return err
}

func getContent(ctx context.Context, q queryer, id int64) (*domain.ContentItem, error) {
	return scanContent(q.QueryRowContext(ctx, `SELECT `+contentColumns+` FROM content_items WHERE id = ?`, id))
}

func scanContent(row scanner) (*domain.ContentItem, error) {
	var (
		item                                 domain.ContentItem
		caption, hashtags, scheduled, posted sql.NullString
		ctaHook, mediaPath, notes            sql.NullString
	)
	if err := row.Scan(
		&item.ID,
		&item.ClientID,
		&item.Platform,
		&item.Title,
		&caption,
		&hashtags,
		&item.Status,
		&scheduled,
		&posted,
		&ctaHook,
		&mediaPath,
		&notes,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, noRows(err, domain.ErrContentNotFound)
	}
	item.Caption = caption.String
	item.Hashtags = hashtags.String
	item.ScheduledDate = scheduled.String
	item.PostedDate = posted.String
	item.CTAHook = ctaHook.String
	item.MediaPath = mediaPath.String
	item.Notes = notes.String
	return &item, nil
}
