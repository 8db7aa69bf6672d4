package repo

import "github.com/andrelima-dev/meuestoque/internal/models"

// SnapshotRepository stores the daily stock snapshots.
type SnapshotRepository interface {
	// UpsertDaily records totalQuantity for the given ISO day. The first
	// write of a day inserts; later writes update total_quantity and raise
	// max_quantity when the new total exceeds the recorded peak.
	UpsertDaily(userID int, date string, totalQuantity int) (models.StockSnapshot, error)
	// GetRecent returns up to days snapshots, most recent first.
	GetRecent(userID, days int) ([]models.StockSnapshot, error)
}
