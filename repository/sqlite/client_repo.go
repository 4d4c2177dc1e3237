package sqlite

import (
	"context"
	"database/sql"

	"github.com/fastygo/backoffice/domain"
	infra "github.com/fastygo/backoffice/internal/infrastructure/sqlite"
	"github.com/fastygo/backoffice/repository"
)

type clientRepository struct {
	db *infra.Manager
}

// NewClientRepository returns a SQLite-backed ClientRepository.
func NewClientRepository(db *infra.Manager) repository.ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, business_id, name, email, phone, notes, COALESCE(created_at, '')`

func (r *clientRepository) List(ctx context.Context, businessID int64) ([]domain.Client, error) {
	const query = `SELECT ` + clientColumns + ` FROM clients WHERE business_id = ? ORDER BY created_at DESC, id DESC`

	clients := []domain.Client{}
	err := r.db.Do(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, businessID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			c, err := scanClient(rows)
			if err != nil {
				return err
			}
			clients = append(clients, *c)
		}
		return rows.Err()
	})
	return clients, err
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	var c *domain.Client
	err := r.db.Do(ctx, func(db *sql.DB) error {
		var err error
		c, err = scanClient(db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id))
		return err
	})
	return c, err
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if client == nil {
		return nil, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO clients (business_id, name, email, phone, notes)
	VALUES (?, ?, ?, ?, ?)
	RETURNING id, created_at
	`
	err := r.db.InTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, query,
			client.BusinessID,
			client.Name,
			nullString(client.Email),
			nullString(client.Phone),
			nullString(client.Notes),
		).Scan(&client.ID, &client.CreatedAt); err != nil {
			return classify(err)
		}
		return appendClientActivity(ctx, tx, client.ID, domain.ActivityClientCreated)
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	if client == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE clients
	SET name = ?,
		email = ?,
		phone = ?,
		notes = ?
	WHERE id = ?
	`
	return r.db.InTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query,
			client.Name,
			nullString(client.Email),
			nullString(client.Phone),
			nullString(client.Notes),
			client.ID,
		)
		if err != nil {
			return classify(err)
		}
		if err := affected(res, domain.ErrClientNotFound); err != nil {
			return err
		}
		return appendClientActivity(ctx, tx, client.ID, domain.ActivityClientUpdated)
	})
}

// Delete removes the client. Activities go first so databases created before the cascade
// was declared behave the same.
func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	return r.db.InTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM client_activities WHERE client_id = ?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
		if err != nil {
			return classify(err)
		}
		return affected(res, domain.ErrClientNotFound)
	})
}

func (r *clientRepository) Activities(ctx context.Context, clientID int64) ([]domain.ClientActivity, error) {
	const query = `
	SELECT id, client_id, action, COALESCE(created_at, '')
	FROM client_activities
	WHERE client_id = ?
	ORDER BY created_at DESC, id DESC
	`

	activities := []domain.ClientActivity{}
	err := r.db.Do(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, clientID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var a domain.ClientActivity
			if err := rows.Scan(&a.ID, &a.ClientID, &a.Action, &a.CreatedAt); err != nil {
				return err
			}
			activities = append(activities, a)
		}
		return rows.Err()
	})
	return activities, err
}

func appendClientActivity(ctx context.Context, q queryer, clientID int64, action string) error {
	_, err := q.ExecContext(ctx, `INSERT INTO client_activities (client_id, action) VALUES (?, ?)`, clientID, action)
	return err
}

func scanClient(row scanner) (*domain.Client, error) {
	var (
		c                   domain.Client
		email, phone, notes sql.NullString
	)
	if err := row.Scan(&c.ID, &c.BusinessID, &c.Name, &email, &phone, &notes, &c.CreatedAt); err != nil {
		return nil, noRows(err, domain.ErrClientNotFound)
	}
	c.Email = email.String
	c.Phone = phone.String
	c.Notes = notes.String
	return &c, nil
}
