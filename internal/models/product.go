package models

import "time"

// Product represents a registered product in a user's inventory.
// TotalValue is derived from Quantity and UnitPrice and is recomputed on
// every write; it is never accepted from the client.
type Product struct {
	ID          int       `json:"id"`
	UserID      int       `json:"-"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	TotalValue  float64   `json:"total_value"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}
