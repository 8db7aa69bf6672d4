package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/andrelima-dev/meuestoque/internal/models"
)

var validate = validator.New()

// FieldError describes a single invalid request field.
type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func writeFieldErrors(w http.ResponseWriter, errs []FieldError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
}

func validateProduct(req ProductRequest) []FieldError {
	var errs []FieldError
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, FieldError{"name", "name is required"})
	}
	if !models.ValidCategory(req.Category) {
		errs = append(errs, FieldError{"category", fmt.Sprintf("category must be one of: %s", strings.Join(models.Categories, ", "))})
	}
	if req.Quantity <= 0 {
		errs = append(errs, FieldError{"quantity", "quantity must be greater than zero"})
	}
	if req.UnitPrice <= 0 {
		errs = append(errs, FieldError{"unit_price", "unit price must be greater than zero"})
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errs = append(errs, FieldError{"date", "date must be a valid YYYY-MM-DD day"})
	}
	return errs
}

// structFieldErrors translates validator tag failures into field errors.
func structFieldErrors(v any) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var errs []FieldError
	var verrs validator.ValidationErrors
	errors.As(err, &verrs)
	for _, fe := range verrs {
		errs = append(errs, FieldError{
			Field:       strings.ToLower(fe.Field()),
			Description: fmt.Sprintf("failed validation on '%s'", fe.Tag()),
		})
	}
	if len(errs) == 0 {
		errs = append(errs, FieldError{Field: "body", Description: err.Error()})
	}
	return errs
}
