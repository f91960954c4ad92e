package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"

	"ecomstore/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type envelope map[string]any

func (app *application) writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		app.errorLog.Output(2, fmt.Sprintf("%s\n%s", err, debug.Stack()))
		http.Error(w, `{"message":"Internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

func (app *application) serverError(w http.ResponseWriter, err error) {
	app.errorLog.Output(2, fmt.Sprintf("%s\n%s", err.Error(), debug.Stack()))
	app.writeJSON(w, http.StatusInternalServerError, envelope{"message": "Internal server error"})
}

func (app *application) clientError(w http.ResponseWriter, status int, message string) {
	app.writeJSON(w, status, envelope{"message": message})
}

func (app *application) notFound(w http.ResponseWriter, message string) {
	app.clientError(w, http.StatusNotFound, message)
}

// modelError maps store-layer sentinels onto HTTP responses; anything
// unclassified is a 500 with the detail kept server-side.
func (app *application) modelError(w http.ResponseWriter, err error) {
	var stockErr *models.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		app.clientError(w, http.StatusBadRequest, "Insufficient stock for "+stockErr.ProductName)
	case errors.Is(err, models.ErrNoRecord):
		app.notFound(w, "Record not found")
	case errors.Is(err, models.ErrEmptyCart):
		app.clientError(w, http.StatusBadRequest, "Cart is empty")
	case errors.Is(err, models.ErrNotOwner):
		app.clientError(w, http.StatusForbidden, "Access denied")
	case errors.Is(err, models.ErrStageGuard):
		app.clientError(w, http.StatusBadRequest, "Order cannot be cancelled at this stage")
	case errors.Is(err, models.ErrDuplicateReview):
		app.clientError(w, http.StatusBadRequest, "You have already reviewed this product")
	case errors.Is(err, models.ErrDuplicateEmail):
		app.clientError(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, models.ErrDuplicateSKU):
		app.clientError(w, http.StatusBadRequest, "SKU already exists. Please use a different SKU.")
	case errors.Is(err, models.ErrDuplicateCategory):
		app.clientError(w, http.StatusBadRequest, "Category already exists")
	case errors.Is(err, models.ErrCategoryInUse):
		app.clientError(w, http.StatusBadRequest, "Cannot delete category. It still has products.")
	case errors.Is(err, models.ErrInvalidCredentials):
		app.clientError(w, http.StatusBadRequest, "Invalid credentials")
	default:
		app.serverError(w, err)
	}
}

// pathID reads a pat URL parameter as an ObjectID.
func (app *application) pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(r.URL.Query().Get(":" + name))
}

// pagination reads the page/limit query parameters with the usual defaults.
func pagination(r *http.Request) (page, limit int64) {
	page, limit = 1, 10
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return page, limit
}

func totalPages(total, limit int64) int64 {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
