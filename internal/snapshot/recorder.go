// Package snapshot keeps the daily stock snapshots used by the weekly
// stock chart. A snapshot records a user's total stock quantity for one
// ISO day, along with the peak value observed during that day.
package snapshot

import (
	"time"

	"github.com/andrelima-dev/meuestoque/internal/models"
	"github.com/andrelima-dev/meuestoque/internal/repo"
)

type Recorder struct {
	products  repo.ProductRepository
	snapshots repo.SnapshotRepository
}

func NewRecorder(products repo.ProductRepository, snapshots repo.SnapshotRepository) *Recorder {
	return &Recorder{products: products, snapshots: snapshots}
}

// Capture upserts today's snapshot with the user's current total stock.
// Called after every stock-affecting write; the repository keeps the daily
// peak, so capturing often only ever raises max_quantity.
func (r *Recorder) Capture(userID int) (models.StockSnapshot, error) {
	total, err := r.products.TotalQuantity(userID)
	if err != nil {
		return models.StockSnapshot{}, err
	}
	today := time.Now().UTC().Format("2006-01-02")
	return r.snapshots.UpsertDaily(userID, today, total)
}

// Recent returns up to days snapshots, most recent first.
func (r *Recorder) Recent(userID, days int) ([]models.StockSnapshot, error) {
	return r.snapshots.GetRecent(userID, days)
}
