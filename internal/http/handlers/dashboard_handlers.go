package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/andrelima-dev/meuestoque/internal/dashboard"
	"github.com/andrelima-dev/meuestoque/internal/models"
	"github.com/andrelima-dev/meuestoque/internal/repo"
)

// GetWeeklyRegistrationsHandler returns the current week's registrations
// bucketed per weekday, Sunday first. All seven buckets are always present.
//
// @Summary Weekly registration chart data
// @Tags dashboard
// @Produce json
// @Success 200 {array} dashboard.WeekdayBucket
// @Security BearerAuth
// @Router /dashboard/weekly [get]
func GetWeeklyRegistrationsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll(currentUserID(r))
	if err != nil {
		http.Error(w, "failed to list products", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dashboard.WeeklyRegistrations(products, time.Now()))
}

// GetCategoryDistributionHandler returns the per-category product counts
// and percentages. Every fixed category appears, zero-filled when empty.
//
// @Summary Category distribution chart data
// @Tags dashboard
// @Produce json
// @Success 200 {array} dashboard.CategorySlice
// @Security BearerAuth
// @Router /dashboard/categories [get]
func GetCategoryDistributionHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll(currentUserID(r))
	if err != nil {
		http.Error(w, "failed to list products", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dashboard.CategoryDistribution(products))
}

// GetSalesBalanceHandler returns the rolling sales balance. When the user
// has set a reset reference, sales dated at or before it are excluded from
// the totals; the records themselves are untouched.
//
// @Summary Rolling sales balance
// @Tags dashboard
// @Produce json
// @Success 200 {object} dashboard.Balance
// @Security BearerAuth
// @Router /dashboard/balance [get]
func GetSalesBalanceHandler(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	list, _, err := saleRepo.GetAll(userID, repo.SaleFilter{})
	if err != nil {
		http.Error(w, "failed to list sales", http.StatusInternalServerError)
		return
	}

	var resetRef *time.Time
	if prefsStore != nil {
		resetRef, err = prefsStore.ResetReference(r.Context(), userID)
		if err != nil {
			// Preferences are best-effort: fall back to the full history.
			log.Printf("failed to read reset reference for user %d: %v", userID, err)
			resetRef = nil
		}
	}
	writeJSON(w, http.StatusOK, dashboard.SalesBalance(list, resetRef))
}

// GetStockHistoryHandler returns the last seven daily stock snapshots,
// most recent first. The days query parameter widens or narrows the window.
//
// @Summary Daily stock snapshot history
// @Tags dashboard
// @Produce json
// @Success 200 {array} models.StockSnapshot
// @Security BearerAuth
// @Router /dashboard/stock-history [get]
func GetStockHistoryHandler(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := queryIntPtr(r, "days"); v != nil && *v > 0 {
		days = *v
	}
	snapshots, err := snapshotRecorder.Recent(currentUserID(r), days)
	if err != nil {
		http.Error(w, "failed to list stock snapshots", http.StatusInternalServerError)
		return
	}
	if snapshots == nil {
		snapshots = []models.StockSnapshot{}
	}
	writeJSON(w, http.StatusOK, snapshots)
}

// GetDashboardMetricsHandler returns the headline counters shown at the
// top of the dashboard.
//
// @Summary Dashboard headline metrics
// @Tags dashboard
// @Produce json
// @Success 200 {object} MetricsResponse
// @Security BearerAuth
// @Router /dashboard/metrics [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)

	products, err := productRepo.GetAll(userID)
	if err != nil {
		http.Error(w, "failed to list products", http.StatusInternalServerError)
		return
	}
	_, salesCount, err := saleRepo.GetAll(userID, repo.SaleFilter{})
	if err != nil {
		http.Error(w, "failed to list sales", http.StatusInternalServerError)
		return
	}
	_, pendingTasks, err := taskRepo.GetAll(userID, repo.TaskFilter{Status: models.StatusPending})
	if err != nil {
		http.Error(w, "failed to list tasks", http.StatusInternalServerError)
		return
	}

	metrics := MetricsResponse{
		TotalProducts: len(products),
		TotalSales:    salesCount,
		PendingTasks:  pendingTasks,
	}
	for _, p := range products {
		metrics.TotalStockQuantity += p.Quantity
		metrics.TotalStockValue += p.TotalValue
	}
	writeJSON(w, http.StatusOK, metrics)
}
