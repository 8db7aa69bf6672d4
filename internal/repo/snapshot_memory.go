package repo

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/andrelima-dev/meuestoque/internal/models"
)

type InMemorySnapshotRepository struct {
	mu        sync.Mutex
	snapshots []models.StockSnapshot
}

func NewInMemorySnapshotRepository() *InMemorySnapshotRepository {
	return &InMemorySnapshotRepository{}
}

func (r *InMemorySnapshotRepository) UpsertDaily(userID int, date string, totalQuantity int) (models.StockSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.snapshots {
		if s.UserID == userID && s.Date == date {
			s.TotalQuantity = totalQuantity
			if totalQuantity > s.MaxQuantity {
				s.MaxQuantity = totalQuantity
			}
			r.snapshots[i] = s
			return s, nil
		}
	}

	s := models.StockSnapshot{
		ID:            uuid.NewString(),
		UserID:        userID,
		Date:          date,
		TotalQuantity: totalQuantity,
		MaxQuantity:   totalQuantity,
	}
	r.snapshots = append(r.snapshots, s)
	return s, nil
}

func (r *InMemorySnapshotRepository) GetRecent(userID, days int) ([]models.StockSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.StockSnapshot
	for _, s := range r.snapshots {
		if s.UserID == userID {
			matched = append(matched, s)
		}
	}
	// ISO dates sort lexicographically.
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date > matched[j].Date })
	if days > 0 && days < len(matched) {
		matched = matched[:days]
	}
	return matched, nil
}

// Clear removes all snapshots. Test helper.
func (r *InMemorySnapshotRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = nil
}
