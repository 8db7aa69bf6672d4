package sales

import (
	"errors"
	"math"
)

var (
	// ErrInvalidQuantity is returned when the sale quantity is not positive.
	ErrInvalidQuantity = errors.New("sale quantity must be a positive integer")

	// ErrInvalidSalePrice is returned when the realized unit price is not positive.
	ErrInvalidSalePrice = errors.New("sale price must be greater than zero")

	// ErrInsufficientStock is returned when the sale quantity exceeds the
	// product's current stock.
	ErrInsufficientStock = errors.New("sale quantity exceeds current stock")
)

// Outcome holds the profit/loss split of a sale. Both values are positive
// magnitudes; at most one is non-zero, and both are zero exactly when the
// sale price equals the unit cost.
type Outcome struct {
	Profit float64
	Loss   float64
}

// ComputeSaleOutcome validates a sale against the product's current stock
// and splits (salePrice - unitCost) × quantity into profit and loss.
func ComputeSaleOutcome(unitCost, salePrice float64, quantity, stock int) (Outcome, error) {
	if quantity <= 0 {
		return Outcome{}, ErrInvalidQuantity
	}
	if salePrice <= 0 {
		return Outcome{}, ErrInvalidSalePrice
	}
	if quantity > stock {
		return Outcome{}, ErrInsufficientStock
	}

	delta := round2((salePrice - unitCost) * float64(quantity))
	return Outcome{
		Profit: math.Max(delta, 0),
		Loss:   math.Max(-delta, 0),
	}, nil
}

func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
