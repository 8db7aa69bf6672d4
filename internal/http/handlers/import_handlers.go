package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/andrelima-dev/meuestoque/internal/inventory"
	"github.com/andrelima-dev/meuestoque/internal/models"
	"github.com/andrelima-dev/meuestoque/internal/repo"
)

// ImportProductsHandler bulk-registers products from a CSV body with the
// columns name,category,quantity,unit_price,date[,description]. The mode
// query parameter picks what happens on a name collision: "skip" (default)
// leaves the existing product untouched, "merge" folds the row in at the
// weighted average price. Rows that fail validation are reported and do
// not abort the rest of the file.
//
// @Summary Import products from CSV
// @Tags products
// @Accept text/csv
// @Produce json
// @Param mode query string false "skip or merge" default(skip)
// @Success 200 {object} ImportProductsResult
// @Failure 400 {object} map[string]any
// @Security BearerAuth
// @Router /products/import [post]
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "skip"
	}
	if mode != "skip" && mode != "merge" {
		writeFieldErrors(w, []FieldError{{Field: "mode", Description: "mode must be skip or merge"}})
		return
	}
	userID := currentUserID(r)

	reader := csv.NewReader(r.Body)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		http.Error(w, "empty or unreadable CSV", http.StatusBadRequest)
		return
	}
	if len(header) < 5 || header[0] != "name" {
		writeFieldErrors(w, []FieldError{{Field: "header", Description: "expected columns name,category,quantity,unit_price,date[,description]"}})
		return
	}

	result := ImportProductsResult{Errors: []FieldError{}}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			result.Errors = append(result.Errors, FieldError{Field: fmt.Sprintf("line %d", line), Description: "malformed CSV row"})
			continue
		}
		if len(record) < 5 {
			result.Errors = append(result.Errors, FieldError{Field: fmt.Sprintf("line %d", line), Description: "too few columns"})
			continue
		}

		quantity, qerr := strconv.Atoi(record[2])
		unitPrice, perr := strconv.ParseFloat(record[3], 64)
		if qerr != nil || perr != nil {
			result.Errors = append(result.Errors, FieldError{Field: fmt.Sprintf("line %d", line), Description: "quantity and unit_price must be numeric"})
			continue
		}
		req := ProductRequest{
			Name:      record[0],
			Category:  record[1],
			Quantity:  quantity,
			UnitPrice: unitPrice,
			Date:      record[4],
		}
		if len(record) > 5 {
			req.Description = record[5]
		}
		if errs := validateProduct(req); len(errs) > 0 {
			result.Errors = append(result.Errors, FieldError{Field: fmt.Sprintf("line %d", line), Description: errs[0].Description})
			continue
		}

		existing, err := productRepo.GetByNormalizedName(userID, inventory.NormalizeName(req.Name))
		switch {
		case err == nil && mode == "skip":
			continue
		case err == nil:
			merged, rerr := inventory.Reconcile(existing, inventory.Incoming{Quantity: req.Quantity, UnitPrice: req.UnitPrice})
			if rerr != nil {
				result.Errors = append(result.Errors, FieldError{Field: fmt.Sprintf("line %d", line), Description: rerr.Error()})
				continue
			}
			merged.UpdatedAt = time.Now()
			if _, uerr := productRepo.Update(merged); uerr != nil {
				result.Errors = append(result.Errors, FieldError{Field: fmt.Sprintf("line %d", line), Description: "failed to merge row"})
				continue
			}
			logMovement(existing.ID, req.Quantity, "import")
			result.MergedProductsCount++
		case errors.Is(err, repo.ErrProductNotFound):
			date, _ := time.Parse("2006-01-02", req.Date)
			now := time.Now()
			created, cerr := productRepo.Create(models.Product{
				UserID:      userID,
				Name:        req.Name,
				Category:    req.Category,
				Quantity:    req.Quantity,
				UnitPrice:   req.UnitPrice,
				TotalValue:  inventory.Round2(float64(req.Quantity) * req.UnitPrice),
				Date:        date,
				Description: req.Description,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
			if cerr != nil {
				result.Errors = append(result.Errors, FieldError{Field: fmt.Sprintf("line %d", line), Description: "failed to create row"})
				continue
			}
			logMovement(created.ID, created.Quantity, "import")
			result.ImportedProductsCount++
		default:
			result.Errors = append(result.Errors, FieldError{Field: fmt.Sprintf("line %d", line), Description: "failed to check for duplicate"})
		}
	}

	if result.ImportedProductsCount > 0 || result.MergedProductsCount > 0 {
		captureSnapshot(userID)
	}
	writeJSON(w, http.StatusOK, result)
}
