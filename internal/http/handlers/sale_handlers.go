package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/andrelima-dev/meuestoque/internal/models"
	"github.com/andrelima-dev/meuestoque/internal/repo"
	"github.com/andrelima-dev/meuestoque/internal/sales"
)

func toSaleResponse(s models.Sale) SaleResponse {
	return SaleResponse{
		Id:          s.ID,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Quantity:    s.Quantity,
		SalePrice:   s.SalePrice,
		SaleDate:    s.SaleDate.Format(time.RFC3339),
		Profit:      s.Profit,
		Loss:        s.Loss,
	}
}

// CreateSaleHandler records a sale: profit or loss is computed against the
// product's current average unit cost, and the stock decrement plus the
// sale insert happen atomically. Insufficient stock rejects the request
// and writes nothing.
//
// @Summary Record a sale
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body SaleRequest true "Sale to record"
// @Success 201 {object} SaleResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {string} string
// @Security BearerAuth
// @Router /sales [post]
func CreateSaleHandler(w http.ResponseWriter, r *http.Request) {
	var req SaleRequest
	if !readJSON(w, r, &req) {
		return
	}
	if errs := structFieldErrors(req); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	userID := currentUserID(r)

	product, err := productRepo.GetByID(userID, req.ProductID)
	if errors.Is(err, repo.ErrProductNotFound) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		return
	}

	outcome, err := sales.ComputeSaleOutcome(product.UnitPrice, req.SalePrice, req.Quantity, product.Quantity)
	if err != nil {
		writeFieldErrors(w, []FieldError{{Field: "quantity", Description: err.Error()}})
		return
	}

	saleDate := time.Now()
	if req.SaleDate != "" {
		parsed, perr := time.Parse(time.RFC3339, req.SaleDate)
		if perr != nil {
			writeFieldErrors(w, []FieldError{{Field: "sale_date", Description: "sale date must be RFC3339"}})
			return
		}
		saleDate = parsed
	}

	sale := models.Sale{
		UserID:      userID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    req.Quantity,
		SalePrice:   req.SalePrice,
		SaleDate:    saleDate,
		Profit:      outcome.Profit,
		Loss:        outcome.Loss,
	}
	recorded, _, err := saleRepo.RecordSale(sale)
	if errors.Is(err, repo.ErrInsufficientStock) {
		// Stock changed between the read and the decrement.
		writeFieldErrors(w, []FieldError{{Field: "quantity", Description: "insufficient stock for sale"}})
		return
	}
	if err != nil {
		http.Error(w, "failed to record sale", http.StatusInternalServerError)
		return
	}
	logMovement(product.ID, -req.Quantity, "sale")
	captureSnapshot(userID)
	writeJSON(w, http.StatusCreated, toSaleResponse(recorded))
}

// GetSalesHandler lists the user's sales, newest first. Supports since,
// until, offset and limit query parameters.
//
// @Summary List sales
// @Tags sales
// @Produce json
// @Success 200 {object} SalesSearchResult
// @Security BearerAuth
// @Router /sales [get]
func GetSalesHandler(w http.ResponseWriter, r *http.Request) {
	f := repo.SaleFilter{
		Since:  queryTimePtr(r, "since"),
		Until:  queryTimePtr(r, "until"),
		Offset: queryIntPtr(r, "offset"),
		Limit:  queryIntPtr(r, "limit"),
	}
	list, total, err := saleRepo.GetAll(currentUserID(r), f)
	if err != nil {
		http.Error(w, "failed to list sales", http.StatusInternalServerError)
		return
	}
	result := SalesSearchResult{Data: make([]SaleResponse, 0, len(list)), Meta: Meta{TotalCount: total}}
	for _, s := range list {
		result.Data = append(result.Data, toSaleResponse(s))
	}
	writeJSON(w, http.StatusOK, result)
}

// DeleteSaleHandler removes a sale record. Stock is not restored; use a
// quantity adjustment for that.
//
// @Summary Delete a sale
// @Tags sales
// @Param id path int true "Sale ID"
// @Success 204 {string} string
// @Failure 404 {string} string
// @Security BearerAuth
// @Router /sales/{id} [delete]
func DeleteSaleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid sale ID", http.StatusBadRequest)
		return
	}
	if err := saleRepo.Delete(currentUserID(r), id); err != nil {
		if errors.Is(err, repo.ErrSaleNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete sale", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportSalesHandler streams the user's sales as CSV, honoring the same
// filters as the listing.
//
// @Summary Export sales as CSV
// @Tags sales
// @Produce text/csv
// @Success 200 {string} string
// @Security BearerAuth
// @Router /sales/export [get]
func ExportSalesHandler(w http.ResponseWriter, r *http.Request) {
	f := repo.SaleFilter{
		Since: queryTimePtr(r, "since"),
		Until: queryTimePtr(r, "until"),
	}
	list, _, err := saleRepo.GetAll(currentUserID(r), f)
	if err != nil {
		http.Error(w, "failed to list sales", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="sales.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"product_name", "quantity", "sale_price", "sale_date", "profit", "loss"})
	for _, s := range list {
		_ = cw.Write([]string{
			s.ProductName,
			strconv.Itoa(s.Quantity),
			fmt.Sprintf("%.2f", s.SalePrice),
			s.SaleDate.Format(time.RFC3339),
			fmt.Sprintf("%.2f", s.Profit),
			fmt.Sprintf("%.2f", s.Loss),
		})
	}
	cw.Flush()
}
