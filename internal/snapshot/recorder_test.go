package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrelima-dev/meuestoque/internal/models"
	"github.com/andrelima-dev/meuestoque/internal/repo"
)

func TestCaptureKeepsDailyPeak(t *testing.T) {
	products := repo.NewInMemoryProductRepository()
	snapshots := repo.NewInMemorySnapshotRepository()
	recorder := NewRecorder(products, snapshots)

	p, err := products.Create(models.Product{UserID: 1, Name: "Arroz", Quantity: 10, UnitPrice: 5})
	require.NoError(t, err)

	snap, err := recorder.Capture(1)
	require.NoError(t, err)
	require.Equal(t, 10, snap.TotalQuantity)
	require.Equal(t, 10, snap.MaxQuantity)

	// Stock shrinks: the total follows, the peak does not.
	_, err = products.AdjustQuantity(1, p.ID, -4)
	require.NoError(t, err)

	snap, err = recorder.Capture(1)
	require.NoError(t, err)
	require.Equal(t, 6, snap.TotalQuantity)
	require.Equal(t, 10, snap.MaxQuantity)

	// Stock grows past the old peak: both move.
	_, err = products.AdjustQuantity(1, p.ID, 9)
	require.NoError(t, err)

	snap, err = recorder.Capture(1)
	require.NoError(t, err)
	require.Equal(t, 15, snap.TotalQuantity)
	require.Equal(t, 15, snap.MaxQuantity)
}

func TestCaptureScopedPerUser(t *testing.T) {
	products := repo.NewInMemoryProductRepository()
	snapshots := repo.NewInMemorySnapshotRepository()
	recorder := NewRecorder(products, snapshots)

	_, err := products.Create(models.Product{UserID: 1, Name: "Arroz", Quantity: 10, UnitPrice: 5})
	require.NoError(t, err)
	_, err = products.Create(models.Product{UserID: 2, Name: "Feijão", Quantity: 3, UnitPrice: 8})
	require.NoError(t, err)

	snap, err := recorder.Capture(2)
	require.NoError(t, err)
	require.Equal(t, 3, snap.TotalQuantity)

	recent, err := recorder.Recent(2, 7)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, 3, recent[0].TotalQuantity)
}
