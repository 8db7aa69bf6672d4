package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/andrelima-dev/meuestoque/internal/models"
)

type PostgresSnapshotRepository struct {
	db *sql.DB
}

func NewPostgresSnapshotRepository(db *sql.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

func (r *PostgresSnapshotRepository) UpsertDaily(userID int, date string, totalQuantity int) (models.StockSnapshot, error) {
	query := `
		INSERT INTO stock_snapshots (id, user_id, date, total_quantity, max_quantity)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (user_id, date) DO UPDATE
		SET total_quantity = EXCLUDED.total_quantity,
		    max_quantity = GREATEST(stock_snapshots.max_quantity, EXCLUDED.total_quantity)
		RETURNING id, user_id, date, total_quantity, max_quantity`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var s models.StockSnapshot
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), userID, date, totalQuantity).
		Scan(&s.ID, &s.UserID, &s.Date, &s.TotalQuantity, &s.MaxQuantity)
	return s, err
}

func (r *PostgresSnapshotRepository) GetRecent(userID, days int) ([]models.StockSnapshot, error) {
	query := `SELECT id, user_id, date, total_quantity, max_quantity
		FROM stock_snapshots WHERE user_id = $1 ORDER BY date DESC LIMIT $2`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, userID, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []models.StockSnapshot
	for rows.Next() {
		var s models.StockSnapshot
		if err := rows.Scan(&s.ID, &s.UserID, &s.Date, &s.TotalQuantity, &s.MaxQuantity); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}
