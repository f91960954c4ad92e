package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSKUToken(t *testing.T) {
	tests := []struct {
		in       string
		n        int
		fallback string
		want     string
	}{
		{"iPhone 15", 4, "XXXX", "IPHO"},
		{"TV", 4, "XXXX", "TVXX"},
		{"", 4, "XXXX", "XXXX"},
		{"Electronics", 3, "GEN", "ELE"},
		{"", 3, "GEN", "GEN"},
		{"Apple", 2, "XX", "AP"},
		{"!!!", 2, "XX", "XX"},
		{"a-b c", 3, "GEN", "ABC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, skuToken(tt.in, tt.n, tt.fallback), "skuToken(%q, %d)", tt.in, tt.n)
	}
}

func TestSKUParts(t *testing.T) {
	assert.Equal(t, "IPHO-ELE-AP", skuParts("iPhone 15", "Electronics", "Apple"))
	assert.Equal(t, "XXXX-GEN-XX", skuParts("", "", ""))
	assert.Equal(t, "MUGX-GEN-XX", skuParts("Mug", "", ""))
}
