package repo

import "github.com/andrelima-dev/meuestoque/internal/models"

// TaskFilter narrows and paginates task listings. Search matches title or
// description, case-insensitively.
type TaskFilter struct {
	Status   string
	Priority string
	Search   string
	Offset   *int
	Limit    *int
}

// TaskRepository defines the interface for task data operations.
type TaskRepository interface {
	Create(task models.Task) (models.Task, error)
	GetAll(userID int, f TaskFilter) ([]models.Task, int, error)
	GetByID(userID, id int) (models.Task, error)
	Update(task models.Task) (models.Task, error)
	Delete(userID, id int) error
}
