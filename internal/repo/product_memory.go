package repo

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/andrelima-dev/meuestoque/internal/inventory"
	"github.com/andrelima-dev/meuestoque/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of
// ProductRepository, used by the handler test suites.
type InMemoryProductRepository struct {
	mu       sync.Mutex
	products []models.Product
	nextID   int
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{nextID: 1}
}

func (r *InMemoryProductRepository) Create(p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	r.nextID++
	p.TotalValue = inventory.Round2(float64(p.Quantity) * p.UnitPrice)
	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryProductRepository) GetAll(userID int) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Product
	for _, p := range r.products {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryProductRepository) GetByID(userID, id int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.ID == id && p.UserID == userID {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) GetByNormalizedName(userID int, normalized string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.UserID == userID && inventory.NormalizeName(p.Name) == normalized {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Update(p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.products {
		if existing.ID == p.ID && existing.UserID == p.UserID {
			p.TotalValue = inventory.Round2(float64(p.Quantity) * p.UnitPrice)
			p.CreatedAt = existing.CreatedAt
			r.products[i] = p
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Delete(userID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id && p.UserID == userID {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) AdjustQuantity(userID, id, delta int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID != id || p.UserID != userID {
			continue
		}
		if p.Quantity+delta < 0 {
			return models.Product{}, ErrInvalidQuantityChange
		}
		p.Quantity += delta
		p.TotalValue = inventory.Round2(float64(p.Quantity) * p.UnitPrice)
		p.UpdatedAt = time.Now().UTC()
		r.products[i] = p
		return p, nil
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Filter(userID int, f ProductFilter) ([]models.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Product
	for _, p := range r.products {
		if p.UserID != userID {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.MinPrice != nil && p.UnitPrice < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.UnitPrice > *f.MaxPrice {
			continue
		}
		if f.MinQty != nil && p.Quantity < *f.MinQty {
			continue
		}
		if f.MaxQty != nil && p.Quantity > *f.MaxQty {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	if f.Offset != nil && *f.Offset > 0 {
		if *f.Offset >= total {
			return []models.Product{}, total, nil
		}
		matched = matched[*f.Offset:]
	}
	if f.Limit != nil && *f.Limit > 0 && *f.Limit < len(matched) {
		matched = matched[:*f.Limit]
	}
	return matched, total, nil
}

func (r *InMemoryProductRepository) TotalQuantity(userID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, p := range r.products {
		if p.UserID == userID {
			total += p.Quantity
		}
	}
	return total, nil
}

// Clear removes all products. Test helper.
func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = nil
	r.nextID = 1
}
