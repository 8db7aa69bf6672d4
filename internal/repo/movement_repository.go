package repo

import (
	"time"

	"github.com/andrelima-dev/meuestoque/internal/models"
)

// MovementFilter narrows and paginates movement listings.
type MovementFilter struct {
	Since  *time.Time
	Until  *time.Time
	Offset *int
	Limit  *int
}

// MovementRepository logs stock quantity changes per product.
type MovementRepository interface {
	Log(productID, delta int, reason string) error
	GetByProductID(productID int, f MovementFilter) ([]models.Movement, int, error)
}
