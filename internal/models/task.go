package models

import "time"

// Task priorities.
const (
	PriorityLow    = "baixa"
	PriorityMedium = "média"
	PriorityHigh   = "alta"
)

// Task statuses.
const (
	StatusPending    = "pendente"
	StatusInProgress = "em_andamento"
	StatusDone       = "concluída"
)

// Task is a to-do item owned by a single user. CompletedAt is set when the
// status transitions to concluída and cleared when it leaves it.
type Task struct {
	ID          int        `json:"id"`
	UserID      int        `json:"-"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     time.Time  `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
