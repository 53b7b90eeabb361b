package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductDiscountPercent(t *testing.T) {
	testCases := []struct {
		name     string
		product  Product
		expected int64
		label    string
	}{
		{name: "rounds down", product: Product{Price: 1699, OldPrice: 1999}, expected: 15, label: "-15%"},
		{name: "rounds up", product: Product{Price: 1099, OldPrice: 1499}, expected: 27, label: "-27%"},
		{name: "near half", product: Product{Price: 3199, OldPrice: 3999}, expected: 20, label: "-20%"},
		{name: "no discount", product: Product{Price: 500, OldPrice: 500}, expected: 0, label: "-0%"},
		{name: "free item", product: Product{Price: 0, OldPrice: 200}, expected: 100, label: "-100%"},
		{name: "zero old price", product: Product{Price: 0, OldPrice: 0}, expected: 0, label: "-0%"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.product.DiscountPercent())
			assert.Equal(t, tc.label, tc.product.DerivedDiscountLabel())
		})
	}
}

func TestProductSavings(t *testing.T) {
	assert.Equal(t, 300, Product{Price: 1699, OldPrice: 1999}.Savings())
	assert.Equal(t, 0, Product{Price: 10, OldPrice: 10}.Savings())
}
