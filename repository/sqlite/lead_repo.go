package sqlite

import (
	"context"
	"database/sql"

	"github.com/fastygo/backoffice/domain"
	infra "github.com/fastygo/backoffice/internal/infrastructure/sqlite"
	"github.com/fastygo/backoffice/repository"
)

type leadRepository struct {
	db *infra.Manager
}

// NewLeadRepository returns a SQLite-backed LeadRepository.
func NewLeadRepository(db *infra.Manager) repository.LeadRepository {
	return &leadRepository{db: db}
}

const leadColumns = `id, COALESCE(business_id, 0), name, email, phone, notes, COALESCE(status, 'New'),
	COALESCE(expected_value, 0), COALESCE(probability, 0), COALESCE(created_at, '')`

func (r *leadRepository) List(ctx context.Context, businessID int64) ([]domain.Lead, error) {
	const query = `SELECT ` + leadColumns + ` FROM leads WHERE business_id = ? ORDER BY created_at DESC, id DESC`

	leads := []domain.Lead{}
	err := r.db.Do(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, businessID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			l, err := scanLead(rows)
			if err != nil {
				return err
			}
			leads = append(leads, *l)
		}
		return rows.Err()
	})
	return leads, err
}

func (r *leadRepository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	var l *domain.Lead
	err := r.db.Do(ctx, func(db *sql.DB) error {
		var err error
		l, err = getLead(ctx, db, id)
		return err
	})
	return l, err
}

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	if lead == nil {
		return nil, domain.ErrInvalidPayload
	}
	lead.ApplyDefaults()

	const query = `
	INSERT INTO leads (business_id, name, email, phone, notes, status, expected_value, probability)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	RETURNING id
	`
	err := r.db.Do(ctx, func(db *sql.DB) error {
		if err := db.QueryRowContext(ctx, query,
			lead.BusinessID,
			lead.Name,
			nullString(lead.Email),
			nullString(lead.Phone),
			nullString(lead.Notes),
			lead.Status,
			money(lead.ExpectedValue),
			lead.Probability,
		).Scan(&lead.ID); err != nil {
			return classify(err)
		}
		stored, err := getLead(ctx, db, lead.ID)
		if err != nil {
			return err
		}
		*lead = *stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *leadRepository) Update(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	if lead == nil {
		return nil, domain.ErrInvalidPayload
	}
	lead.ApplyDefaults()

	const query = `
	UPDATE leads
	SET name = ?,
		email = ?,
		phone = ?,
		notes = ?,
		status = ?,
		expected_value = ?,
		probability = ?
	WHERE id = ?
	`
	var updated *domain.Lead
	err := r.db.InTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query,
			lead.Name,
			nullString(lead.Email),
			nullString(lead.Phone),
			nullString(lead.Notes),
			lead.Status,
			money(lead.ExpectedValue),
			lead.Probability,
			lead.ID,
		)
		if err != nil {
			return classify(err)
		}
		if err := affected(res, domain.ErrLeadNotFound); err != nil {
			return err
		}
		updated, err = getLead(ctx, tx, lead.ID)
		return err
	})
	return updated, err
}

func (r *leadRepository) Delete(ctx context.Context, id int64) error {
	return r.db.Do(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, `DELETE FROM leads WHERE id = ?`, id)
		if err != nil {
			return classify(err)
		}
		return affected(res, domain.ErrLeadNotFound)
	})
}

func getLead(ctx context.Context, q queryer, id int64) (*domain.Lead, error) {
	return scanLead(q.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = ?`, id))
}

func scanLead(row scanner) (*domain.Lead, error) {
	var (
		l                   domain.Lead
		email, phone, notes sql.NullString
	)
	if err := row.Scan(
		&l.ID,
		&l.BusinessID,
		&l.Name,
		&email,
		&phone,
		&notes,
		&l.Status,
		&l.ExpectedValue,
		&l.Probability,
		&l.CreatedAt,
	); err != nil {
		return nil, noRows(err, domain.ErrLeadNotFound)
	}
	l.Email = email.String
	l.Phone = phone.String
	l.Notes = notes.String
	return &l, nil
}
