package sales

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeSaleOutcomeProfit(t *testing.T) {
	out, err := ComputeSaleOutcome(5.00, 8.00, 3, 10)
	require.NoError(t, err)
	require.Equal(t, 9.00, out.Profit)
	require.Equal(t, 0.00, out.Loss)
}

func TestComputeSaleOutcomeLoss(t *testing.T) {
	out, err := ComputeSaleOutcome(8.00, 5.00, 2, 10)
	require.NoError(t, err)
	require.Equal(t, 0.00, out.Profit)
	require.Equal(t, 6.00, out.Loss)
}

func TestComputeSaleOutcomeBreakEven(t *testing.T) {
	out, err := ComputeSaleOutcome(7.50, 7.50, 4, 4)
	require.NoError(t, err)
	require.Equal(t, 0.00, out.Profit)
	require.Equal(t, 0.00, out.Loss)
}

func TestComputeSaleOutcomeExclusive(t *testing.T) {
	cases := []struct {
		unitCost, salePrice float64
		quantity, stock     int
	}{
		{1.10, 9.90, 1, 1},
		{9.90, 1.10, 3, 3},
		{3.33, 3.34, 100, 100},
		{2.00, 2.00, 5, 50},
	}
	for _, tc := range cases {
		out, err := ComputeSaleOutcome(tc.unitCost, tc.salePrice, tc.quantity, tc.stock)
		require.NoError(t, err)
		require.Zero(t, out.Profit*out.Loss, "profit and loss must never both be set")
		require.GreaterOrEqual(t, out.Profit, 0.0)
		require.GreaterOrEqual(t, out.Loss, 0.0)
	}
}

func TestComputeSaleOutcomeInsufficientStock(t *testing.T) {
	_, err := ComputeSaleOutcome(5.00, 8.00, 5, 3)
	require.ErrorIs(t, err, ErrInsufficientStock)
}

func TestComputeSaleOutcomeInvalidInput(t *testing.T) {
	_, err := ComputeSaleOutcome(5.00, 8.00, 0, 10)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = ComputeSaleOutcome(5.00, 8.00, -2, 10)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = ComputeSaleOutcome(5.00, 0, 1, 10)
	require.ErrorIs(t, err, ErrInvalidSalePrice)

	_, err = ComputeSaleOutcome(5.00, -1.00, 1, 10)
	require.ErrorIs(t, err, ErrInvalidSalePrice)
}
