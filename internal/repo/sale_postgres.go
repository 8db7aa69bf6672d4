package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andrelima-dev/meuestoque/internal/inventory"
	"github.com/andrelima-dev/meuestoque/internal/models"
)

type PostgresSaleRepository struct {
	db *sql.DB
}

func NewPostgresSaleRepository(db *sql.DB) *PostgresSaleRepository {
	return &PostgresSaleRepository{db: db}
}

// RecordSale runs the stock decrement and the sale insert inside one
// transaction. A failure at any point rolls both back, so stock and sales
// can never diverge.
func (r *PostgresSaleRepository) RecordSale(s models.Sale) (models.Sale, models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Sale{}, models.Product{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		s.ProductID, s.UserID)
	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sale{}, models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Sale{}, models.Product{}, err
	}
	if s.Quantity > product.Quantity {
		return models.Sale{}, models.Product{}, ErrInsufficientStock
	}

	product.Quantity -= s.Quantity
	product.TotalValue = inventory.Round2(float64(product.Quantity) * product.UnitPrice)
	product.UpdatedAt = time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		`UPDATE products SET quantity = $1, total_value = $2, updated_at = $3 WHERE id = $4 AND user_id = $5`,
		product.Quantity, product.TotalValue, product.UpdatedAt, product.ID, product.UserID); err != nil {
		return models.Sale{}, models.Product{}, err
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO sales (user_id, product_id, product_name, quantity, sale_price, sale_date, profit, loss)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		s.UserID, s.ProductID, s.ProductName, s.Quantity, s.SalePrice, s.SaleDate, s.Profit, s.Loss).Scan(&s.ID)
	if err != nil {
		return models.Sale{}, models.Product{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Sale{}, models.Product{}, fmt.Errorf("failed to commit sale: %w", err)
	}
	return s, product, nil
}

func (r *PostgresSaleRepository) GetAll(userID int, f SaleFilter) ([]models.Sale, int, error) {
	args := []any{userID}
	where := "WHERE user_id = $1"
	argIdx := 2

	if f.Since != nil {
		where += fmt.Sprintf(" AND sale_date >= $%d", argIdx)
		args = append(args, *f.Since)
		argIdx++
	}
	if f.Until != nil {
		where += fmt.Sprintf(" AND sale_date <= $%d", argIdx)
		args = append(args, *f.Until)
		argIdx++
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sales "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, user_id, product_id, product_name, quantity, sale_price, sale_date, profit, loss
		FROM sales ` + where + ` ORDER BY sale_date DESC`
	if f.Limit != nil && *f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *f.Limit)
		argIdx++
	}
	if f.Offset != nil && *f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.UserID, &s.ProductID, &s.ProductName, &s.Quantity,
			&s.SalePrice, &s.SaleDate, &s.Profit, &s.Loss); err != nil {
			return nil, 0, err
		}
		sales = append(sales, s)
	}
	return sales, total, rows.Err()
}

func (r *PostgresSaleRepository) Delete(userID, id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrSaleNotFound
	}
	return nil
}
