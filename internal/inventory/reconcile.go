package inventory

import (
	"errors"
	"math"
	"strings"

	"github.com/andrelima-dev/meuestoque/internal/models"
)

var (
	// ErrInvalidQuantity is returned when either side of a merge has a
	// non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrInvalidUnitPrice is returned when either side of a merge has a
	// negative unit price.
	ErrInvalidUnitPrice = errors.New("unit price cannot be negative")
)

// Incoming carries the fields of a new product submission that take part
// in a merge. Category, date and description of the incoming entry are
// discarded; the existing record keeps its own.
type Incoming struct {
	Quantity  int
	UnitPrice float64
}

// NormalizeName trims and case-folds a product name for duplicate
// detection. Accents are not folded: "café" and "cafe" are distinct
// products.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SameName reports whether two product names collide under NormalizeName.
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}

// Round2 rounds to 2 decimal places using round-half-to-even, so repeated
// merges do not drift in one direction.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// Reconcile merges an incoming product submission into an existing product
// with the same normalized name. The merged quantity is the sum of both
// quantities and the merged unit price is the quantity-weighted average of
// both prices, so total stock value is conserved. Metadata (category, date,
// description) of the existing record is preserved unchanged.
func Reconcile(existing models.Product, in Incoming) (models.Product, error) {
	if existing.Quantity <= 0 || in.Quantity <= 0 {
		return models.Product{}, ErrInvalidQuantity
	}
	if existing.UnitPrice < 0 || in.UnitPrice < 0 {
		return models.Product{}, ErrInvalidUnitPrice
	}

	newQuantity := existing.Quantity + in.Quantity
	weighted := float64(existing.Quantity)*existing.UnitPrice + float64(in.Quantity)*in.UnitPrice

	merged := existing
	merged.Quantity = newQuantity
	merged.UnitPrice = Round2(weighted / float64(newQuantity))
	merged.TotalValue = Round2(float64(newQuantity) * merged.UnitPrice)
	return merged, nil
}
