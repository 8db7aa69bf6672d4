package repo

import (
	"time"

	"github.com/andrelima-dev/meuestoque/internal/models"
)

// SaleFilter narrows and paginates sale listings.
type SaleFilter struct {
	Since  *time.Time
	Until  *time.Time
	Offset *int
	Limit  *int
}

// SaleRepository defines the interface for sale data operations.
type SaleRepository interface {
	// RecordSale decrements the product's stock and inserts the sale as a
	// single logical transaction: on any failure (including insufficient
	// stock) neither write is applied. Returns the stored sale and the
	// product as left after the decrement.
	RecordSale(sale models.Sale) (models.Sale, models.Product, error)
	GetAll(userID int, f SaleFilter) ([]models.Sale, int, error)
	Delete(userID, id int) error
}
