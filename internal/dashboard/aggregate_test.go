package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andrelima-dev/meuestoque/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeeklyRegistrationsCurrentWeekOnly(t *testing.T) {
	// Wednesday; the week runs Sunday Aug 23 through Saturday Aug 29.
	now := day(2026, time.August, 26)

	products := []models.Product{
		{Name: "a", TotalValue: 50.00, Date: day(2026, time.August, 24)}, // Monday
		{Name: "b", TotalValue: 30.00, Date: day(2026, time.August, 26)}, // Wednesday
		{Name: "c", TotalValue: 20.00, Date: day(2026, time.August, 26)}, // Wednesday
		{Name: "d", TotalValue: 99.00, Date: day(2026, time.August, 16)}, // previous week
		{Name: "e", TotalValue: 99.00, Date: day(2026, time.August, 30)}, // next week
	}

	buckets := WeeklyRegistrations(products, now)
	require.Len(t, buckets, 7)

	for i, label := range WeekdayLabels {
		require.Equal(t, label, buckets[i].Weekday)
	}

	require.Equal(t, 1, buckets[1].Items) // Seg
	require.Equal(t, 50.00, buckets[1].Value)
	require.Equal(t, 2, buckets[3].Items) // Qua
	require.Equal(t, 50.00, buckets[3].Value)

	for _, i := range []int{0, 2, 4, 5, 6} {
		require.Zero(t, buckets[i].Items)
		require.Zero(t, buckets[i].Value)
	}
}

func TestCategoryDistribution(t *testing.T) {
	products := []models.Product{
		{Category: "bebidas"},
		{Category: "bebidas"},
		{Category: "bebidas"},
		{Category: "alimentos"},
	}

	slices := CategoryDistribution(products)
	require.Len(t, slices, len(models.Categories))

	// Sorted by descending percentage; ties alphabetically.
	require.Equal(t, "bebidas", slices[0].Category)
	require.Equal(t, 3, slices[0].Items)
	require.Equal(t, 75.00, slices[0].Percentage)
	require.Equal(t, "alimentos", slices[1].Category)
	require.Equal(t, 25.00, slices[1].Percentage)

	var sum float64
	seen := map[string]bool{}
	for _, s := range slices {
		sum += s.Percentage
		seen[s.Category] = true
	}
	require.InDelta(t, 100.0, sum, 0.05)
	for _, c := range models.Categories {
		require.True(t, seen[c], "category %q missing from distribution", c)
	}
}

func TestCategoryDistributionEmpty(t *testing.T) {
	slices := CategoryDistribution(nil)
	require.Len(t, slices, len(models.Categories))
	for _, s := range slices {
		require.Zero(t, s.Items)
		require.Zero(t, s.Percentage)
	}
}

func TestSalesBalance(t *testing.T) {
	sales := []models.Sale{
		{SalePrice: 10.00, Quantity: 2, Profit: 6.00, SaleDate: day(2026, time.August, 10)},
		{SalePrice: 4.00, Quantity: 1, Loss: 2.00, SaleDate: day(2026, time.August, 12)},
		{SalePrice: 8.00, Quantity: 3, Profit: 9.00, SaleDate: day(2026, time.August, 20)},
	}

	b := SalesBalance(sales, nil)
	require.Equal(t, 3, b.SalesCount)
	require.Equal(t, 13.00, b.NetBalance)  // 6 - 2 + 9
	require.Equal(t, 46.00, b.GrossProfit) // 20 + (4-2) + 24
}

func TestSalesBalanceResetReference(t *testing.T) {
	sales := []models.Sale{
		{SalePrice: 10.00, Quantity: 2, Profit: 6.00, SaleDate: day(2026, time.August, 10)},
		{SalePrice: 4.00, Quantity: 1, Loss: 2.00, SaleDate: day(2026, time.August, 12)},
		{SalePrice: 8.00, Quantity: 3, Profit: 9.00, SaleDate: day(2026, time.August, 20)},
	}

	// Sales at or before the reference are excluded, later ones kept.
	ref := day(2026, time.August, 12)
	b := SalesBalance(sales, &ref)
	require.Equal(t, 1, b.SalesCount)
	require.Equal(t, 9.00, b.NetBalance)
	require.Equal(t, 24.00, b.GrossProfit)

	// A reference after every sale empties the balance.
	late := day(2026, time.December, 31)
	b = SalesBalance(sales, &late)
	require.Zero(t, b.SalesCount)
	require.Zero(t, b.NetBalance)
	require.Zero(t, b.GrossProfit)
}
