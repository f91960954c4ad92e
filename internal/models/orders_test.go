package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeOrderTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []CartItem
		wantSubtotal float64
		wantTax      float64
		wantShipping float64
		wantTotal    float64
	}{
		{
			name:         "two units at twenty",
			items:        []CartItem{{Quantity: 2, Price: 20}},
			wantSubtotal: 40,
			wantTax:      3.2,
			wantShipping: 10,
			wantTotal:    53.2,
		},
		{
			name:         "free shipping above one hundred",
			items:        []CartItem{{Quantity: 3, Price: 50}},
			wantSubtotal: 150,
			wantTax:      12,
			wantShipping: 0,
			wantTotal:    162,
		},
		{
			name:         "exactly one hundred still pays shipping",
			items:        []CartItem{{Quantity: 4, Price: 25}},
			wantSubtotal: 100,
			wantTax:      8,
			wantShipping: 10,
			wantTotal:    118,
		},
		{
			name:         "just above the boundary",
			items:        []CartItem{{Quantity: 1, Price: 100.01}},
			wantSubtotal: 100.01,
			wantTax:      8,
			wantShipping: 0,
			wantTotal:    108.01,
		},
		{
			name:         "multiple lines",
			items:        []CartItem{{Quantity: 1, Price: 9.99}, {Quantity: 2, Price: 15.5}},
			wantSubtotal: 40.99,
			wantTax:      3.28,
			wantShipping: 10,
			wantTotal:    54.27,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal, tax, shipping, total := ComputeOrderTotals(tt.items)
			assert.Equal(t, tt.wantSubtotal, subtotal)
			assert.Equal(t, tt.wantTax, tax)
			assert.Equal(t, tt.wantShipping, shipping)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestComputeOrderTotalsInvariant(t *testing.T) {
	items := []CartItem{
		{Quantity: 3, Price: 12.49},
		{Quantity: 1, Price: 0.99},
		{Quantity: 7, Price: 4.2},
	}
	subtotal, tax, shipping, total := ComputeOrderTotals(items)
	assert.Equal(t, round2(subtotal+tax+shipping), total)
	assert.Equal(t, round2(subtotal*0.08), tax)
}

func TestCanCancel(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusPending, true},
		{StatusProcessing, true},
		{StatusShipped, false},
		{StatusDelivered, false},
		{StatusCancelled, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanCancel(tt.status), "status %q", tt.status)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, ValidStatus(s), "status %q", s)
	}
	assert.False(t, ValidStatus("paid"))
	assert.False(t, ValidStatus(""))
}
