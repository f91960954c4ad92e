package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecomstore/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPagination(t *testing.T) {
	tests := []struct {
		url       string
		wantPage  int64
		wantLimit int64
	}{
		{"/api/products", 1, 10},
		{"/api/products?page=3&limit=25", 3, 25},
		{"/api/products?page=0&limit=-5", 1, 10},
		{"/api/products?page=abc&limit=xyz", 1, 10},
		{"/api/products?limit=500", 1, 10},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, tt.url, nil)
		page, limit := pagination(r)
		assert.Equal(t, tt.wantPage, page, tt.url)
		assert.Equal(t, tt.wantLimit, limit, tt.url)
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), totalPages(0, 10))
	assert.Equal(t, int64(1), totalPages(1, 10))
	assert.Equal(t, int64(1), totalPages(10, 10))
	assert.Equal(t, int64(2), totalPages(11, 10))
	assert.Equal(t, int64(5), totalPages(41, 10))
}

func TestModelErrorMapping(t *testing.T) {
	app := newTestApplication()

	tests := []struct {
		err         error
		wantStatus  int
		wantMessage string
	}{
		{&models.InsufficientStockError{ProductName: "Widget"}, http.StatusBadRequest, "Insufficient stock for Widget"},
		{models.ErrNoRecord, http.StatusNotFound, "Record not found"},
		{models.ErrEmptyCart, http.StatusBadRequest, "Cart is empty"},
		{models.ErrNotOwner, http.StatusForbidden, "Access denied"},
		{models.ErrStageGuard, http.StatusBadRequest, "Order cannot be cancelled at this stage"},
		{models.ErrDuplicateReview, http.StatusBadRequest, "You have already reviewed this product"},
		{models.ErrInvalidCredentials, http.StatusBadRequest, "Invalid credentials"},
		{errors.New("connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		app.modelError(rec, tt.err)
		assert.Equal(t, tt.wantStatus, rec.Code, tt.err.Error())
		assert.Equal(t, tt.wantMessage, responseMessage(t, rec), tt.err.Error())
	}
}
