package repo

import "github.com/andrelima-dev/meuestoque/internal/models"

// ProductFilter narrows and paginates product listings.
type ProductFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
	MinQty   *int
	MaxQty   *int
	Offset   *int
	Limit    *int
}

// ProductRepository defines the interface for product data operations.
// Every method is scoped to the owning user; records never cross accounts.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll(userID int) ([]models.Product, error)
	GetByID(userID, id int) (models.Product, error)
	// GetByNormalizedName finds the user's product whose trimmed,
	// case-folded name equals normalized. Used by the merge flow.
	GetByNormalizedName(userID int, normalized string) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(userID, id int) error
	// AdjustQuantity applies a positive or negative delta, refusing to go
	// below zero, and keeps total_value consistent.
	AdjustQuantity(userID, id, delta int) (models.Product, error)
	Filter(userID int, f ProductFilter) ([]models.Product, int, error)
	// TotalQuantity sums the stock quantity across all of the user's
	// products, for the daily snapshot.
	TotalQuantity(userID int) (int, error)
}
