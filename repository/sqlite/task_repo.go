package sqlite

import (
	"context"
	"database/sql"

	"github.com/fastygo/backoffice/domain"
	infra "github.com/fastygo/backoffice/internal/infrastructure/sqlite"
	"github.com/fastygo/backoffice/repository"
)

type taskRepository struct {
	db *infra.Manager
}

// NewTaskRepository returns a SQLite-backed TaskRepository.
func NewTaskRepository(db *infra.Manager) repository.TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, business_id, client_id, title, description, COALESCE(status, 'Pending'), due_date, COALESCE(created_at, '')`

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var task *domain.Task
	err := r.db.Do(ctx, func(db *sql.DB) error {
		var err error
		task, err = scanTask(db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
		return err
	})
	return task, err
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE (? = 0 OR business_id = ?)
	  AND (? = 0 OR client_id = ?)
	ORDER BY created_at DESC, id DESC
	`

	tasks := []domain.Task{}
	err := r.db.Do(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, filter.BusinessID, filter.BusinessID, filter.ClientID, filter.ClientID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			task, err := scanTask(rows)
			if err != nil {
				return err
			}
			tasks = append(tasks, *task)
		}
		return rows.Err()
	})
	return tasks, err
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.Status == "" {
		task.Status = domain.TaskPending
	}

	const query = `
	INSERT INTO tasks (business_id, client_id, title, description, status, due_date)
	VALUES (?, ?, ?, ?, ?, ?)
	RETURNING id, created_at
	`
	err := r.db.Do(ctx, func(db *sql.DB) error {
		return classify(db.QueryRowContext(ctx, query,
			task.BusinessID,
			task.ClientID,
			task.Title,
			nullString(task.Description),
			task.Status,
			nullString(task.DueDate),
		).Scan(&task.ID, &task.CreatedAt))
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	if task.Status == "" {
		task.Status = domain.TaskPending
	}

	const query = `
	UPDATE tasks
	SET title = ?,
		description = ?,
		status = ?,
		due_date = ?
	WHERE id = ?
	`
	return r.db.Do(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, query,
			task.Title,
			nullString(task.Description),
			task.Status,
			nullString(task.DueDate),
			task.ID,
		)
		if err != nil {
			return classify(err)
		}
		return affected(res, domain.ErrTaskNotFound)
	})
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	return r.db.Do(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res, domain.ErrTaskNotFound)
	})
}

func scanTask(row scanner) (*domain.Task, error) {
	var (
		task             domain.Task
		description, due sql.NullString
	)
	if err := row.Scan(
		&task.ID,
		&task.BusinessID,
		&task.ClientID,
		&task.Title,
		&description,
		&task.Status,
		&due,
		&task.CreatedAt,
	); err != nil {
		return nil, noRows(err, domain.ErrTaskNotFound)
	}
	task.Description = description.String
	task.DueDate = due.String
	return &task, nil
}
