package repo

import (
	"sort"
	"strings"
	"sync"

	"github.com/andrelima-dev/meuestoque/internal/models"
)

type InMemoryTaskRepository struct {
	mu     sync.Mutex
	tasks  []models.Task
	nextID int
}

func NewInMemoryTaskRepository() *InMemoryTaskRepository {
	return &InMemoryTaskRepository{nextID: 1}
}

func (r *InMemoryTaskRepository) Create(t models.Task) (models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextID
	r.nextID++
	r.tasks = append(r.tasks, t)
	return t, nil
}

func (r *InMemoryTaskRepository) GetAll(userID int, f TaskFilter) ([]models.Task, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	search := strings.ToLower(f.Search)
	var matched []models.Task
	for _, t := range r.tasks {
		if t.UserID != userID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := len(matched)
	if f.Offset != nil && *f.Offset > 0 {
		if *f.Offset >= total {
			return []models.Task{}, total, nil
		}
		matched = matched[*f.Offset:]
	}
	if f.Limit != nil && *f.Limit > 0 && *f.Limit < len(matched) {
		matched = matched[:*f.Limit]
	}
	return matched, total, nil
}

func (r *InMemoryTaskRepository) GetByID(userID, id int) (models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tasks {
		if t.ID == id && t.UserID == userID {
			return t, nil
		}
	}
	return models.Task{}, ErrTaskNotFound
}

func (r *InMemoryTaskRepository) Update(t models.Task) (models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.tasks {
		if existing.ID == t.ID && existing.UserID == t.UserID {
			t.CreatedAt = existing.CreatedAt
			r.tasks[i] = t
			return t, nil
		}
	}
	return models.Task{}, ErrTaskNotFound
}

func (r *InMemoryTaskRepository) Delete(userID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.tasks {
		if t.ID == id && t.UserID == userID {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return ErrTaskNotFound
}

// Clear removes all tasks. Test helper.
func (r *InMemoryTaskRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = nil
	r.nextID = 1
}
