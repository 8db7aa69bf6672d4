package repo

import (
	"sort"
	"sync"
	"time"

	"github.com/andrelima-dev/meuestoque/internal/models"
)

type InMemoryMovementRepository struct {
	mu        sync.Mutex
	movements []models.Movement
	nextID    int
}

func NewInMemoryMovementRepository() *InMemoryMovementRepository {
	return &InMemoryMovementRepository{nextID: 1}
}

func (r *InMemoryMovementRepository) Log(productID, delta int, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.movements = append(r.movements, models.Movement{
		ID:        r.nextID,
		ProductID: productID,
		Delta:     delta,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	})
	r.nextID++
	return nil
}

func (r *InMemoryMovementRepository) GetByProductID(productID int, f MovementFilter) ([]models.Movement, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Movement
	for _, m := range r.movements {
		if m.ProductID != productID {
			continue
		}
		if f.Since != nil && m.CreatedAt.Before(*f.Since) {
			continue
		}
		if f.Until != nil && m.CreatedAt.After(*f.Until) {
			continue
		}
		matched = append(matched, m)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := len(matched)
	if f.Offset != nil && *f.Offset > 0 {
		if *f.Offset >= total {
			return []models.Movement{}, total, nil
		}
		matched = matched[*f.Offset:]
	}
	if f.Limit != nil && *f.Limit > 0 && *f.Limit < len(matched) {
		matched = matched[:*f.Limit]
	}
	return matched, total, nil
}

// Clear removes all movements. Test helper.
func (r *InMemoryMovementRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = nil
	r.nextID = 1
}
