package repository

import (
	"context"

	"github.com/fastygo/backoffice/domain"
)

// TaskFilter scopes a task listing; zero fields are ignored.
type TaskFilter struct {
	BusinessID int64 `json:"business_id"`
	ClientID   int64 `json:"client_id"`
}

type TaskRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
}
