package models

import "time"

// Sale records a sale of a product. ProductName is denormalized at sale
// time and does not follow later renames of the product.
// Profit and Loss are both stored as positive magnitudes; at most one of
// them is non-zero for a given sale.
type Sale struct {
	ID          int       `json:"id"`
	UserID      int       `json:"-"`
	ProductID   int       `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	SalePrice   float64   `json:"sale_price"`
	SaleDate    time.Time `json:"sale_date"`
	Profit      float64   `json:"profit"`
	Loss        float64   `json:"loss"`
}
