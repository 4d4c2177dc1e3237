package domain

const (
	TaskPending    = "Pending"
	TaskInProgress = "In Progress"
	TaskCompleted  = "Completed"
)

// Task is a to-do item tied to a client.
type Task struct {
	ID          int64  `json:"id"`
	BusinessID  int64  `json:"business_id" validate:"required_without=ID"`
	ClientID    int64  `json:"client_id" validate:"required_without=ID"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	CreatedAt   string `json:"created_at,omitempty"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == TaskCompleted
}
