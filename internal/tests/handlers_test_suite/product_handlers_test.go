package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	handler "github.com/andrelima-dev/meuestoque/internal/http/handlers"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAll)

	w := createProduct(handler.ProductRequest{
		Name:      "Notebook Dell",
		Category:  "eletrônicos",
		Quantity:  3,
		UnitPrice: 2500.00,
		Date:      today(),
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Name != "Notebook Dell" {
		t.Errorf("expected name 'Notebook Dell', got %v", resp.Name)
	}
	if resp.Quantity != 3 {
		t.Errorf("expected quantity 3, got %v", resp.Quantity)
	}
	if resp.TotalValue != 7500.00 {
		t.Errorf("expected total value 7500.00, got %v", resp.TotalValue)
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAll)

	tests := []struct {
		name           string
		payload        handler.ProductRequest
		expectedErrors []string
	}{
		{
			name:           "empty name",
			payload:        handler.ProductRequest{Category: "outros", Quantity: 1, UnitPrice: 1, Date: today()},
			expectedErrors: []string{"name"},
		},
		{
			name:           "unknown category",
			payload:        handler.ProductRequest{Name: "Caderno", Category: "papelaria", Quantity: 1, UnitPrice: 1, Date: today()},
			expectedErrors: []string{"category"},
		},
		{
			name:           "zero quantity and price",
			payload:        handler.ProductRequest{Name: "Caderno", Category: "outros", Date: today()},
			expectedErrors: []string{"quantity", "unit_price"},
		},
		{
			name:           "missing date",
			payload:        handler.ProductRequest{Name: "Caderno", Category: "outros", Quantity: 1, UnitPrice: 1},
			expectedErrors: []string{"date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createProduct(tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", w.Code)
			}

			var resp errorsEnvelope
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			for _, field := range tt.expectedErrors {
				found := false
				for _, fe := range resp.Errors {
					if strings.EqualFold(fe.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}
}

func TestCreateProductHandler_MalformedJSON(t *testing.T) {
	t.Cleanup(clearAll)

	req := newRequest(http.MethodPost, "/products", nil)
	req.Body = io.NopCloser(strings.NewReader(`{Name: "Invalid"`)) // missing quotes
	req.Header.Set("Authorization", "Bearer "+token)

	w := do(req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 Bad Request, got %d", w.Code)
	}
}

func TestCreateProductHandler_DuplicateNameProposesMerge(t *testing.T) {
	t.Cleanup(clearAll)

	existing := mustCreateProduct(handler.ProductRequest{
		Name: "Coca Cola 2L", Category: "bebidas", Quantity: 10, UnitPrice: 5.00, Date: today(),
	})

	// Same name modulo whitespace and case: nothing may be written, the
	// server answers with a merge proposal instead.
	w := createProduct(handler.ProductRequest{
		Name: "  coca cola 2l ", Category: "bebidas", Quantity: 5, UnitPrice: 8.00, Date: today(),
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 Conflict, got %d: %s", w.Code, w.Body.String())
	}

	var conflict handler.MergeConflictResponse
	if err := json.NewDecoder(w.Body).Decode(&conflict); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if conflict.Existing.Id != existing.Id {
		t.Errorf("expected existing product %d, got %d", existing.Id, conflict.Existing.Id)
	}
	if conflict.Proposal.Quantity != 15 {
		t.Errorf("expected proposed quantity 15, got %d", conflict.Proposal.Quantity)
	}
	if conflict.Proposal.UnitPrice != 6.00 {
		t.Errorf("expected proposed unit price 6.00, got %v", conflict.Proposal.UnitPrice)
	}
	if conflict.Proposal.TotalValue != 90.00 {
		t.Errorf("expected proposed total value 90.00, got %v", conflict.Proposal.TotalValue)
	}

	// The existing record is untouched until the merge is committed.
	current, err := productRepo.GetByID(1, existing.Id)
	if err != nil {
		t.Fatalf("error loading product: %v", err)
	}
	if current.Quantity != 10 || current.UnitPrice != 5.00 {
		t.Errorf("existing product changed before commit: %+v", current)
	}
}

func TestMergeProductHandler_Commit(t *testing.T) {
	t.Cleanup(clearAll)

	existing := mustCreateProduct(handler.ProductRequest{
		Name: "Coca Cola 2L", Category: "bebidas", Quantity: 10, UnitPrice: 5.00, Date: today(),
	})

	w := doAuthed(http.MethodPost, fmt.Sprintf("/products/%d/merge", existing.Id),
		handler.MergeCommitRequest{Quantity: 5, UnitPrice: 8.00})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var merged handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&merged); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if merged.Quantity != 15 {
		t.Errorf("expected quantity 15, got %d", merged.Quantity)
	}
	if merged.UnitPrice != 6.00 {
		t.Errorf("expected unit price 6.00, got %v", merged.UnitPrice)
	}
	if merged.Name != "Coca Cola 2L" {
		t.Errorf("merge must keep the existing name, got %q", merged.Name)
	}

	// Still a single product.
	products, _ := productRepo.GetAll(1)
	if len(products) != 1 {
		t.Errorf("expected 1 product after merge, got %d", len(products))
	}
}

func TestMergeProductHandler_InvalidIncoming(t *testing.T) {
	t.Cleanup(clearAll)

	existing := mustCreateProduct(handler.ProductRequest{
		Name: "Coca Cola 2L", Category: "bebidas", Quantity: 10, UnitPrice: 5.00, Date: today(),
	})

	w := doAuthed(http.MethodPost, fmt.Sprintf("/products/%d/merge", existing.Id),
		handler.MergeCommitRequest{Quantity: 0, UnitPrice: 8.00})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestCreateProductHandler_AccentedNamesAreDistinct(t *testing.T) {
	t.Cleanup(clearAll)

	mustCreateProduct(handler.ProductRequest{
		Name: "Café", Category: "alimentos", Quantity: 2, UnitPrice: 10.00, Date: today(),
	})
	w := createProduct(handler.ProductRequest{
		Name: "Cafe", Category: "alimentos", Quantity: 2, UnitPrice: 10.00, Date: today(),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for unaccented variant, got %d", w.Code)
	}

	products, _ := productRepo.GetAll(1)
	if len(products) != 2 {
		t.Errorf("expected 2 distinct products, got %d", len(products))
	}
}

func TestAdjustQuantityHandler(t *testing.T) {
	t.Cleanup(clearAll)

	p := mustCreateProduct(handler.ProductRequest{
		Name: "Sabão em Pó", Category: "limpeza", Quantity: 5, UnitPrice: 12.00, Date: today(),
	})

	w := doAuthed(http.MethodPost, fmt.Sprintf("/products/%d/adjust", p.Id),
		handler.QuantityAdjustmentRequest{Delta: -2})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", resp.Quantity)
	}

	// Going below zero is refused.
	w = doAuthed(http.MethodPost, fmt.Sprintf("/products/%d/adjust", p.Id),
		handler.QuantityAdjustmentRequest{Delta: -10})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 Conflict, got %d", w.Code)
	}
}

func TestUpdateProductHandler(t *testing.T) {
	t.Cleanup(clearAll)

	p := mustCreateProduct(handler.ProductRequest{
		Name: "Camiseta P", Category: "vestuário", Quantity: 10, UnitPrice: 25.00, Date: today(),
	})

	w := doAuthed(http.MethodPut, fmt.Sprintf("/products/%d", p.Id), handler.ProductRequest{
		Name: "Camiseta M", Category: "vestuário", Quantity: 8, UnitPrice: 27.50, Date: today(),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Name != "Camiseta M" || resp.Quantity != 8 {
		t.Errorf("unexpected updated product: %+v", resp)
	}
	if resp.TotalValue != 220.00 {
		t.Errorf("expected recomputed total 220.00, got %v", resp.TotalValue)
	}
}

func TestDeleteProductHandler(t *testing.T) {
	t.Cleanup(clearAll)

	p := mustCreateProduct(handler.ProductRequest{
		Name: "Detergente", Category: "limpeza", Quantity: 1, UnitPrice: 3.00, Date: today(),
	})

	w := doAuthed(http.MethodDelete, fmt.Sprintf("/products/%d", p.Id), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	w = doAuthed(http.MethodGet, fmt.Sprintf("/products/%d", p.Id), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestFilterProductsHandler(t *testing.T) {
	t.Cleanup(clearAll)

	mustCreateProduct(handler.ProductRequest{Name: "Arroz", Category: "alimentos", Quantity: 10, UnitPrice: 6.00, Date: today()})
	mustCreateProduct(handler.ProductRequest{Name: "Feijão", Category: "alimentos", Quantity: 5, UnitPrice: 9.00, Date: today()})
	mustCreateProduct(handler.ProductRequest{Name: "Suco de Uva", Category: "bebidas", Quantity: 2, UnitPrice: 12.00, Date: today()})

	w := doAuthed(http.MethodGet, "/products/search?category=alimentos&min_price=7", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var result handler.ProductsSearchResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if result.Meta.TotalCount != 1 {
		t.Errorf("expected 1 match, got %d", result.Meta.TotalCount)
	}
	if len(result.Data) != 1 || result.Data[0].Name != "Feijão" {
		t.Errorf("unexpected search result: %+v", result.Data)
	}
}

func TestGetMovementsHandler(t *testing.T) {
	t.Cleanup(clearAll)

	p := mustCreateProduct(handler.ProductRequest{
		Name: "Água Mineral", Category: "bebidas", Quantity: 24, UnitPrice: 2.00, Date: today(),
	})
	doAuthed(http.MethodPost, fmt.Sprintf("/products/%d/adjust", p.Id),
		handler.QuantityAdjustmentRequest{Delta: -4})

	w := doAuthed(http.MethodGet, fmt.Sprintf("/products/%d/movements", p.Id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var result handler.MovementsSearchResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if result.Meta.TotalCount != 2 {
		t.Fatalf("expected 2 movements (register and adjust), got %d", result.Meta.TotalCount)
	}
}

func TestExportMovementsHandler(t *testing.T) {
	t.Cleanup(clearAll)

	p := mustCreateProduct(handler.ProductRequest{
		Name: "Água Mineral", Category: "bebidas", Quantity: 24, UnitPrice: 2.00, Date: today(),
	})
	doAuthed(http.MethodPost, fmt.Sprintf("/products/%d/adjust", p.Id),
		handler.QuantityAdjustmentRequest{Delta: -4})

	w := doAuthed(http.MethodGet, fmt.Sprintf("/products/%d/movements/export", p.Id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv content type, got %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "delta") || !strings.Contains(body, "adjust") {
		t.Errorf("unexpected CSV body: %q", body)
	}
}
