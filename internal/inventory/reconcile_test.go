package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andrelima-dev/meuestoque/internal/models"
)

func TestReconcileWorkedExample(t *testing.T) {
	existing := models.Product{
		ID:        1,
		Name:      "Coca Cola 2L",
		Category:  "bebidas",
		Quantity:  10,
		UnitPrice: 5.00,
	}

	merged, err := Reconcile(existing, Incoming{Quantity: 5, UnitPrice: 8.00})
	require.NoError(t, err)

	// 10×5 + 5×8 = 90, spread over 15 units.
	require.Equal(t, 15, merged.Quantity)
	require.Equal(t, 6.00, merged.UnitPrice)
	require.Equal(t, 90.00, merged.TotalValue)
}

func TestReconcilePreservesMetadata(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	existing := models.Product{
		ID:          7,
		UserID:      3,
		Name:        "Café Torrado",
		Category:    "alimentos",
		Quantity:    4,
		UnitPrice:   12.50,
		Date:        date,
		Description: "pacote 500g",
	}

	merged, err := Reconcile(existing, Incoming{Quantity: 2, UnitPrice: 11.00})
	require.NoError(t, err)

	require.Equal(t, existing.ID, merged.ID)
	require.Equal(t, existing.UserID, merged.UserID)
	require.Equal(t, existing.Name, merged.Name)
	require.Equal(t, existing.Category, merged.Category)
	require.Equal(t, existing.Date, merged.Date)
	require.Equal(t, existing.Description, merged.Description)
}

func TestReconcileConservation(t *testing.T) {
	cases := []struct {
		name     string
		existQty int
		existPr  float64
		inQty    int
		inPr     float64
	}{
		{"equal prices", 3, 7.00, 9, 7.00},
		{"uneven split", 7, 3.33, 2, 9.99},
		{"large batch", 120, 1.25, 80, 2.75},
		{"single units", 1, 0.01, 1, 0.03},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			existing := models.Product{Quantity: tc.existQty, UnitPrice: tc.existPr}
			merged, err := Reconcile(existing, Incoming{Quantity: tc.inQty, UnitPrice: tc.inPr})
			require.NoError(t, err)

			require.Equal(t, tc.existQty+tc.inQty, merged.Quantity)

			// Total value may drift from the exact weighted sum only by
			// cent rounding of the averaged unit price.
			exact := float64(tc.existQty)*tc.existPr + float64(tc.inQty)*tc.inPr
			require.InDelta(t, exact, merged.TotalValue, 0.01*float64(merged.Quantity))
			require.Equal(t, Round2(float64(merged.Quantity)*merged.UnitPrice), merged.TotalValue)
		})
	}
}

func TestReconcileInvalidInput(t *testing.T) {
	existing := models.Product{Quantity: 5, UnitPrice: 2.00}

	_, err := Reconcile(existing, Incoming{Quantity: 0, UnitPrice: 1.00})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = Reconcile(existing, Incoming{Quantity: -3, UnitPrice: 1.00})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = Reconcile(existing, Incoming{Quantity: 1, UnitPrice: -0.50})
	require.ErrorIs(t, err, ErrInvalidUnitPrice)

	_, err = Reconcile(models.Product{Quantity: 0, UnitPrice: 2.00}, Incoming{Quantity: 1, UnitPrice: 1.00})
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "coca cola", NormalizeName("  Coca Cola "))
	require.True(t, SameName("ARROZ", "arroz"))

	// Accented names are distinct on purpose: "café" and "cafe" are two
	// different products.
	require.False(t, SameName("Café", "Cafe"))
}

func TestRound2HalfToEven(t *testing.T) {
	require.Equal(t, 1.23, Round2(1.234))
	require.Equal(t, 1.24, Round2(1.236))

	// 0.125 and 0.375 are exact in binary, so the half-to-even tie rule
	// is observable.
	require.Equal(t, 0.12, Round2(0.125))
	require.Equal(t, 0.38, Round2(0.375))
}
