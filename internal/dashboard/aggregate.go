// Package dashboard computes the presentation aggregates. Everything here
// is a pure derivation over the in-memory record lists, recomputed on each
// request; no state of its own is persisted.
package dashboard

import (
	"math"
	"sort"
	"time"

	"github.com/andrelima-dev/meuestoque/internal/models"
)

// WeekdayLabels are the pt-BR weekday labels, Sunday first, matching
// time.Weekday ordering.
var WeekdayLabels = []string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// WeekdayBucket totals the products registered on one weekday of the
// current week.
type WeekdayBucket struct {
	Weekday string  `json:"weekday"`
	Value   float64 `json:"value"`
	Items   int     `json:"items"`
}

// CategorySlice is one entry of the per-category distribution.
type CategorySlice struct {
	Category   string  `json:"category"`
	Items      int     `json:"items"`
	Percentage float64 `json:"percentage"`
}

// Balance is the rolling sales balance.
type Balance struct {
	NetBalance  float64 `json:"net_balance"`
	GrossProfit float64 `json:"gross_profit"`
	SalesCount  int     `json:"sales_count"`
}

// weekStart returns midnight of the Sunday opening the week containing t.
func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// WeeklyRegistrations buckets products by the weekday of their registration
// date, for the week containing now only. All seven buckets are always
// present, Sunday first.
func WeeklyRegistrations(products []models.Product, now time.Time) []WeekdayBucket {
	start := weekStart(now)
	end := start.AddDate(0, 0, 7)

	buckets := make([]WeekdayBucket, 7)
	for i := range buckets {
		buckets[i].Weekday = WeekdayLabels[i]
	}
	for _, p := range products {
		if p.Date.Before(start) || !p.Date.Before(end) {
			continue
		}
		i := int(p.Date.Weekday())
		buckets[i].Value = round2(buckets[i].Value + p.TotalValue)
		buckets[i].Items++
	}
	return buckets
}

// CategoryDistribution counts products per fixed category. Every fixed
// category is always represented, zero-filled when absent. Entries are
// sorted by descending percentage, alphabetically on ties. Percentages sum
// to 100 up to rounding when any product exists, and are all zero otherwise.
func CategoryDistribution(products []models.Product) []CategorySlice {
	counts := make(map[string]int, len(models.Categories))
	total := 0
	for _, p := range products {
		counts[p.Category]++
		total++
	}

	slices := make([]CategorySlice, 0, len(models.Categories))
	for _, c := range models.Categories {
		s := CategorySlice{Category: c, Items: counts[c]}
		if total > 0 {
			s.Percentage = round2(float64(s.Items) / float64(total) * 100)
		}
		slices = append(slices, s)
	}

	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Percentage != slices[j].Percentage {
			return slices[i].Percentage > slices[j].Percentage
		}
		return slices[i].Category < slices[j].Category
	})
	return slices
}

// SalesBalance sums profit minus loss over the given sales. When resetRef
// is set, sales dated at or before it are excluded; this is a display-only
// soft reset, not a deletion. Gross profit keeps the original dashboard
// semantics: realized revenue minus losses.
func SalesBalance(sales []models.Sale, resetRef *time.Time) Balance {
	var b Balance
	for _, s := range sales {
		if resetRef != nil && !s.SaleDate.After(*resetRef) {
			continue
		}
		b.NetBalance += s.Profit - s.Loss
		b.GrossProfit += s.SalePrice*float64(s.Quantity) - s.Loss
		b.SalesCount++
	}
	b.NetBalance = round2(b.NetBalance)
	b.GrossProfit = round2(b.GrossProfit)
	return b
}

func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
