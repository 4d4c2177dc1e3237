package sqlite

import (
	"context"
	"database/sql"

	"github.com/fastygo/backoffice/domain"
	infra "github.com/fastygo/backoffice/internal/infrastructure/sqlite"
	"github.com/fastygo/backoffice/repository"
)

var (
	errCaptionNotFound    = domain.NewError(domain.ErrCodeNotFound, "caption not found")
	errHashtagSetNotFound = domain.NewError(domain.ErrCodeNotFound, "hashtag set not found")
)

type captionRepository struct {
	db *infra.Manager
}

// NewCaptionRepository returns a SQLite-backed CaptionRepository.
func NewCaptionRepository(db *infra.Manager) repository.CaptionRepository {
	return &captionRepository{db: db}
}

func (r *captionRepository) List(ctx context.Context, clientID int64) ([]domain.Caption, error) {
	const query = `
	SELECT id, COALESCE(client_id, 0), platform, caption, tags, COALESCE(created_at, '')
	FROM caption_library
	WHERE client_id = ?
	ORDER BY created_at DESC, id DESC
	`

	captions := []domain.Caption{}
	err := r.db.Do(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, clientID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				c              domain.Caption
				platform, tags sql.NullString
			)
			if err := rows.Scan(&c.ID, &c.ClientID, &platform, &c.Caption, &tags, &c.CreatedAt); err != nil {
				return err
			}
			c.Platform, c.Tags = platform.String, tags.String
			captions = append(captions, c)
		}
		return rows.Err()
	})
	return captions, err
}

func (r *captionRepository) Create(ctx context.Context, caption *domain.Caption) (*domain.Caption, error) {
	if caption == nil {
		return nil, domain.ErrInvalidPayload
	}
	err := r.db.Do(ctx, func(db *sql.DB) error {
		return classify(db.QueryRowContext(ctx,
			`INSERT INTO caption_library (client_id, platform, caption, tags) VALUES (?, ?, ?, ?) RETURNING id, created_at`,
			caption.ClientID, nullString(caption.Platform), caption.Caption, nullString(caption.Tags),
		).Scan(&caption.ID, &caption.CreatedAt))
	})
	if err != nil {
		return nil, err
	}
	return caption, nil
}

func (r *captionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.Do(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, `DELETE FROM caption_library WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res, errCaptionNotFound)
	})
}

type hashtagSetRepository struct {
	db *infra.Manager
}

// NewHashtagSetRepository returns a SQLite-backed HashtagSetRepository.
func NewHashtagSetRepository(db *infra.Manager) repository.HashtagSetRepository {
	return &hashtagSetRepository{db: db}
}

func (r *hashtagSetRepository) List(ctx context.Context, clientID int64) ([]domain.HashtagSet, error) {
	const query = `
	SELECT id, COALESCE(client_id, 0), platform, hashtags, COALESCE(created_at, '')
	FROM hashtag_sets
	WHERE client_id = ?
	ORDER BY created_at DESC, id DESC
	`

	sets := []domain.HashtagSet{}
	err := r.db.Do(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, clientID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				s        domain.HashtagSet
				platform sql.NullString
			)
			if err := rows.Scan(&s.ID, &s.ClientID, &platform, &s.Hashtags, &s.CreatedAt); err != nil {
				return err
			}
			s.Platform = platform.String
			sets = append(sets, s)
		}
		return rows.Err()
	})
	return sets, err
}

func (r *hashtagSetRepository) Create(ctx context.Context, set *domain.HashtagSet) (*domain.HashtagSet, error) {
	if set == nil {
		return nil, domain.ErrInvalidPayload
	}
	err := r.db.Do(ctx, func(db *sql.DB) error {
		return classify(db.QueryRowContext(ctx,
			`INSERT INTO hashtag_sets (client_id, platform, hashtags) VALUES (?, ?, ?) RETURNING id, created_at`,
			set.ClientID, nullString(set.Platform), set.Hashtags,
		).Scan(&set.ID, &set.CreatedAt))
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

func (r *hashtagSetRepository) Delete(ctx context.Context, id int64) error {
	return r.db.Do(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, `DELETE FROM hashtag_sets WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res, errHashtagSetNotFound)
	})
}
