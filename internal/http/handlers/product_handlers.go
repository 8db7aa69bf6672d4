package handlers

import (
	"encoding/csv"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/andrelima-dev/meuestoque/internal/inventory"
	"github.com/andrelima-dev/meuestoque/internal/models"
	"github.com/andrelima-dev/meuestoque/internal/repo"
)

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Quantity:    p.Quantity,
		UnitPrice:   p.UnitPrice,
		TotalValue:  p.TotalValue,
		Date:        p.Date.Format("2006-01-02"),
		Description: p.Description,
	}
}

func captureSnapshot(userID int) {
	if snapshotRecorder == nil {
		return
	}
	if _, err := snapshotRecorder.Capture(userID); err != nil {
		log.Printf("failed to capture stock snapshot for user %d: %v", userID, err)
	}
}

func logMovement(productID, delta int, reason string) {
	if movementRepo == nil || delta == 0 {
		return
	}
	if err := movementRepo.Log(productID, delta, reason); err != nil {
		log.Printf("failed to log movement for product %d: %v", productID, err)
	}
}

// CreateProductHandler registers a new product. When a product with the
// same normalized name already exists for this user, nothing is written:
// the handler answers 409 with a merge proposal, and the client commits it
// through MergeProductHandler if the user confirms.
//
// @Summary Register a product
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to register"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} map[string]any
// @Failure 409 {object} MergeConflictResponse
// @Security BearerAuth
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !readJSON(w, r, &req) {
		return
	}
	if errs := validateProduct(req); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	userID := currentUserID(r)

	existing, err := productRepo.GetByNormalizedName(userID, inventory.NormalizeName(req.Name))
	if err == nil {
		proposal, rerr := inventory.Reconcile(existing, inventory.Incoming{Quantity: req.Quantity, UnitPrice: req.UnitPrice})
		if rerr != nil {
			http.Error(w, rerr.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusConflict, MergeConflictResponse{
			Message:  "a product with this name already exists; confirm to merge quantities",
			Existing: toProductResponse(existing),
			Proposal: MergePreview{
				Quantity:   proposal.Quantity,
				UnitPrice:  proposal.UnitPrice,
				TotalValue: proposal.TotalValue,
			},
		})
		return
	}
	if !errors.Is(err, repo.ErrProductNotFound) {
		http.Error(w, "failed to check for duplicate product", http.StatusInternalServerError)
		return
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	now := time.Now()
	product := models.Product{
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
	}
	created, err := productRepo.Create(product)
	if err != nil {
		http.Error(w, "failed to create product", http.StatusInternalServerError)
		return
	}
	logMovement(created.ID, created.Quantity, "register")
	captureSnapshot(userID)
	writeJSON(w, http.StatusCreated, toProductResponse(created))
}

// MergeProductHandler commits a previously proposed merge: the incoming
// quantity is folded into the existing product at a quantity-weighted
// average unit price. The existing record keeps its id, name, category and
// registration date.
//
// @Summary Merge an incoming batch into an existing product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param merge body MergeCommitRequest true "Incoming quantity and unit price"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {string} string
// @Security BearerAuth
// @Router /products/{id}/merge [post]
func MergeProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	var req MergeCommitRequest
	if !readJSON(w, r, &req) {
		return
	}
	userID := currentUserID(r)

	existing, err := productRepo.GetByID(userID, id)
	if errors.Is(err, repo.ErrProductNotFound) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		return
	}

	merged, err := inventory.Reconcile(existing, inventory.Incoming{Quantity: req.Quantity, UnitPrice: req.UnitPrice})
	if err != nil {
		writeFieldErrors(w, []FieldError{{Field: "merge", Description: err.Error()}})
		return
	}
	merged.UpdatedAt = time.Now()

	updated, err := productRepo.Update(merged)
	if err != nil {
		http.Error(w, "failed to merge product", http.StatusInternalServerError)
		return
	}
	logMovement(updated.ID, req.Quantity, "merge")
	captureSnapshot(userID)
	writeJSON(w, http.StatusOK, toProductResponse(updated))
}

// GetProductsHandler lists every product owned by the authenticated user.
//
// @Summary List products
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Security BearerAuth
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll(currentUserID(r))
	if err != nil {
		http.Error(w, "failed to list products", http.StatusInternalServerError)
		return
	}
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetProductByIDHandler returns one product by id.
//
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {string} string
// @Security BearerAuth
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	product, err := productRepo.GetByID(currentUserID(r), id)
	if errors.Is(err, repo.ErrProductNotFound) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// UpdateProductHandler replaces a product's editable fields. A quantity
// change is recorded as an "edit" movement with the resulting delta.
//
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "New field values"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {string} string
// @Security BearerAuth
// @Router /products/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	var req ProductRequest
	if !readJSON(w, r, &req) {
		return
	}
	if errs := validateProduct(req); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	userID := currentUserID(r)

	existing, err := productRepo.GetByID(userID, id)
	if errors.Is(err, repo.ErrProductNotFound) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		return
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	updatedProduct := existing
	updatedProduct.Name = req.Name
	updatedProduct.Category = req.Category
	updatedProduct.Quantity = req.Quantity
	updatedProduct.UnitPrice = req.UnitPrice
	updatedProduct.TotalValue = inventory.Round2(float64(req.Quantity) * req.UnitPrice)
	updatedProduct.Date = date
	updatedProduct.Description = req.Description
	updatedProduct.UpdatedAt = time.Now()

	updated, err := productRepo.Update(updatedProduct)
	if err != nil {
		http.Error(w, "failed to update product", http.StatusInternalServerError)
		return
	}
	if delta := updated.Quantity - existing.Quantity; delta != 0 {
		logMovement(updated.ID, delta, "edit")
		captureSnapshot(userID)
	}
	writeJSON(w, http.StatusOK, toProductResponse(updated))
}

// DeleteProductHandler removes a product. Past sales referencing it keep
// their denormalized product name.
//
// @Summary Delete a product
// @Tags products
// @Param id path int true "Product ID"
// @Success 204 {string} string
// @Failure 404 {string} string
// @Security BearerAuth
// @Router /products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	userID := currentUserID(r)
	if err := productRepo.Delete(userID, id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete product", http.StatusInternalServerError)
		return
	}
	captureSnapshot(userID)
	w.WriteHeader(http.StatusNoContent)
}

// AdjustQuantityHandler applies a stock delta to a product. The adjustment
// is refused when it would drive the quantity below zero.
//
// @Summary Adjust a product's stock quantity
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param adjustment body QuantityAdjustmentRequest true "Signed delta"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {string} string
// @Failure 409 {string} string
// @Security BearerAuth
// @Router /products/{id}/adjust [post]
func AdjustQuantityHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	var req QuantityAdjustmentRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Delta == 0 {
		writeFieldErrors(w, []FieldError{{Field: "delta", Description: "delta must be non-zero"}})
		return
	}
	userID := currentUserID(r)

	adjusted, err := productRepo.AdjustQuantity(userID, id, req.Delta)
	if errors.Is(err, repo.ErrProductNotFound) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, repo.ErrInvalidQuantityChange) {
		http.Error(w, "quantity cannot become negative", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "failed to adjust quantity", http.StatusInternalServerError)
		return
	}
	logMovement(adjusted.ID, req.Delta, "adjust")
	captureSnapshot(userID)
	writeJSON(w, http.StatusOK, toProductResponse(adjusted))
}

// FilterProductsHandler lists products matching the query string filters:
// name, category, min_price, max_price, min_qty, max_qty, offset, limit.
//
// @Summary Search products
// @Tags products
// @Produce json
// @Success 200 {object} ProductsSearchResult
// @Security BearerAuth
// @Router /products/search [get]
func FilterProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repo.ProductFilter{
		Name:     q.Get("name"),
		Category: q.Get("category"),
		MinPrice: queryFloatPtr(r, "min_price"),
		MaxPrice: queryFloatPtr(r, "max_price"),
		MinQty:   queryIntPtr(r, "min_qty"),
		MaxQty:   queryIntPtr(r, "max_qty"),
		Offset:   queryIntPtr(r, "offset"),
		Limit:    queryIntPtr(r, "limit"),
	}
	products, total, err := productRepo.Filter(currentUserID(r), f)
	if err != nil {
		http.Error(w, "failed to search products", http.StatusInternalServerError)
		return
	}
	result := ProductsSearchResult{Data: make([]ProductResponse, 0, len(products)), Meta: Meta{TotalCount: total}}
	for _, p := range products {
		result.Data = append(result.Data, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, result)
}

// GetMovementsHandler lists the stock movement log for one product.
//
// @Summary List a product's stock movements
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} MovementsSearchResult
// @Failure 404 {string} string
// @Security BearerAuth
// @Router /products/{id}/movements [get]
func GetMovementsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	// Ownership check before exposing the log.
	if _, err := productRepo.GetByID(currentUserID(r), id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		return
	}

	f := repo.MovementFilter{
		Since:  queryTimePtr(r, "since"),
		Until:  queryTimePtr(r, "until"),
		Offset: queryIntPtr(r, "offset"),
		Limit:  queryIntPtr(r, "limit"),
	}
	movements, total, err := movementRepo.GetByProductID(id, f)
	if err != nil {
		http.Error(w, "failed to list movements", http.StatusInternalServerError)
		return
	}
	result := MovementsSearchResult{Data: make([]MovementResponse, 0, len(movements)), Meta: Meta{TotalCount: total}}
	for _, m := range movements {
		result.Data = append(result.Data, MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Delta:     m.Delta,
			Reason:    m.Reason,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, result)
}

// ExportMovementsHandler streams one product's movement log as CSV.
//
// @Summary Export a product's stock movements as CSV
// @Tags products
// @Produce text/csv
// @Param id path int true "Product ID"
// @Success 200 {string} string
// @Failure 404 {string} string
// @Security BearerAuth
// @Router /products/{id}/movements/export [get]
func ExportMovementsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	if _, err := productRepo.GetByID(currentUserID(r), id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		return
	}

	f := repo.MovementFilter{
		Since: queryTimePtr(r, "since"),
		Until: queryTimePtr(r, "until"),
	}
	movements, _, err := movementRepo.GetByProductID(id, f)
	if err != nil {
		http.Error(w, "failed to list movements", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="movements.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "product_id", "delta", "reason", "created_at"})
	for _, m := range movements {
		_ = cw.Write([]string{
			strconv.Itoa(m.ID),
			strconv.Itoa(m.ProductID),
			strconv.Itoa(m.Delta),
			m.Reason,
			m.CreatedAt.Format(time.RFC3339),
		})
	}
	cw.Flush()
}
