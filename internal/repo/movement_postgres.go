package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/andrelima-dev/meuestoque/internal/models"
)

type PostgresMovementRepository struct {
	db *sql.DB
}

func NewPostgresMovementRepository(db *sql.DB) *PostgresMovementRepository {
	return &PostgresMovementRepository{db: db}
}

const movementDefaultLimit = 100

func (r *PostgresMovementRepository) Log(productID, delta int, reason string) error {
	query := `INSERT INTO movements (product_id, delta, reason, created_at) VALUES ($1, $2, $3, $4)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, query, productID, delta, reason, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to insert movement: %w", err)
	}
	return nil
}

func (r *PostgresMovementRepository) GetByProductID(productID int, f MovementFilter) ([]models.Movement, int, error) {
	args := []any{productID}
	where := "WHERE product_id = $1"
	argIdx := 2

	if f.Since != nil {
		where += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *f.Since)
		argIdx++
	}
	if f.Until != nil {
		where += fmt.Sprintf(" AND created_at <= $%d", argIdx)
		args = append(args, *f.Until)
		argIdx++
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movements "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	query := "SELECT id, product_id, delta, reason, created_at FROM movements " + where + " ORDER BY created_at DESC"

	limit := movementDefaultLimit
	if f.Limit != nil && *f.Limit > 0 {
		limit = min(*f.Limit, movementDefaultLimit)
	}
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, limit)
	argIdx++

	if f.Offset != nil && *f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var movements []models.Movement
	for rows.Next() {
		var m models.Movement
		var reason sql.NullString
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Delta, &reason, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		m.Reason = reason.String
		movements = append(movements, m)
	}
	return movements, total, rows.Err()
}
