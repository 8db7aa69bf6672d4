package repo

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrSaleNotFound     = errors.New("sale not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrSnapshotNotFound = errors.New("stock snapshot not found")

	// ErrDuplicatedValueUnique is returned when a write violates a unique
	// constraint (e.g. username already taken).
	ErrDuplicatedValueUnique = errors.New("duplicated value for unique field")

	// ErrInvalidQuantityChange is returned when an adjustment would drive a
	// product's quantity below zero.
	ErrInvalidQuantityChange = errors.New("quantity cannot become negative")

	// ErrInsufficientStock is returned by RecordSale when the requested
	// quantity exceeds the product's current stock; nothing is written.
	ErrInsufficientStock = errors.New("insufficient stock for sale")
)
