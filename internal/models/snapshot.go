package models

// StockSnapshot is the daily record of a user's total stock quantity.
// Date is an ISO day (YYYY-MM-DD); MaxQuantity keeps the peak observed
// during that day so the weekly chart plots the daily high-water mark.
type StockSnapshot struct {
	ID            string `json:"id"`
	UserID        int    `json:"-"`
	Date          string `json:"date"`
	TotalQuantity int    `json:"total_quantity"`
	MaxQuantity   int    `json:"max_quantity"`
}
