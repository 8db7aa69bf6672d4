package repo

import (
	"sort"
	"sync"

	"github.com/andrelima-dev/meuestoque/internal/models"
)

// InMemorySaleRepository is an in-memory implementation of SaleRepository.
// It needs the product repository to apply the stock decrement under the
// same logical operation.
type InMemorySaleRepository struct {
	mu       sync.Mutex
	sales    []models.Sale
	nextID   int
	products *InMemoryProductRepository
}

func NewInMemorySaleRepository(products *InMemoryProductRepository) *InMemorySaleRepository {
	return &InMemorySaleRepository{nextID: 1, products: products}
}

func (r *InMemorySaleRepository) RecordSale(s models.Sale) (models.Sale, models.Product, error) {
	// Decrement first; AdjustQuantity refuses to go below zero, which is
	// exactly the insufficient-stock check.
	product, err := r.products.AdjustQuantity(s.UserID, s.ProductID, -s.Quantity)
	if err != nil {
		if err == ErrInvalidQuantityChange {
			return models.Sale{}, models.Product{}, ErrInsufficientStock
		}
		return models.Sale{}, models.Product{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.nextID
	r.nextID++
	r.sales = append(r.sales, s)
	return s, product, nil
}

func (r *InMemorySaleRepository) GetAll(userID int, f SaleFilter) ([]models.Sale, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Sale
	for _, s := range r.sales {
		if s.UserID != userID {
			continue
		}
		if f.Since != nil && s.SaleDate.Before(*f.Since) {
			continue
		}
		if f.Until != nil && s.SaleDate.After(*f.Until) {
			continue
		}
		matched = append(matched, s)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].SaleDate.After(matched[j].SaleDate) })

	total := len(matched)
	if f.Offset != nil && *f.Offset > 0 {
		if *f.Offset >= total {
			return []models.Sale{}, total, nil
		}
		matched = matched[*f.Offset:]
	}
	if f.Limit != nil && *f.Limit > 0 && *f.Limit < len(matched) {
		matched = matched[:*f.Limit]
	}
	return matched, total, nil
}

func (r *InMemorySaleRepository) Delete(userID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.sales {
		if s.ID == id && s.UserID == userID {
			r.sales = append(r.sales[:i], r.sales[i+1:]...)
			return nil
		}
	}
	return ErrSaleNotFound
}

// Clear removes all sales. Test helper.
func (r *InMemorySaleRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = nil
	r.nextID = 1
}
