package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	items := []LineItem{
		{ProductID: "p1", Variant: "M", UnitPrice: 999, Quantity: 2},
		{ProductID: "p2", UnitPrice: 1500, Quantity: 1},
	}

	got := ComputeTotals(items)
	assert.Equal(t, 3, got.ItemCount)
	assert.Equal(t, int64(999*2+1500), got.Subtotal)
}

func TestComputeTotals_Empty(t *testing.T) {
	assert.Equal(t, Totals{}, ComputeTotals(nil))
}

func TestIndexOf_DistinguishesVariants(t *testing.T) {
	items := []LineItem{
		{ProductID: "p1", Variant: "M"},
		{ProductID: "p1", Variant: "L"},
	}

	assert.Equal(t, 0, IndexOf(items, Key{ProductID: "p1", Variant: "M"}))
	assert.Equal(t, 1, IndexOf(items, Key{ProductID: "p1", Variant: "L"}))
	assert.Equal(t, -1, IndexOf(items, Key{ProductID: "p1"}))
	assert.Equal(t, -1, IndexOf(items, Key{ProductID: "p2", Variant: "M"}))
}

func TestProduct_AcceptsVariant(t *testing.T) {
	saree := Product{ID: "s1"}
	assert.True(t, saree.AcceptsVariant(""))
	assert.False(t, saree.AcceptsVariant("M"))

	kurta := Product{ID: "k1", Sizes: []string{"S", "M", "L"}}
	assert.True(t, kurta.AcceptsVariant("M"))
	assert.False(t, kurta.AcceptsVariant("XXL"))
	assert.False(t, kurta.AcceptsVariant(""))
}

func TestTotalsFit(t *testing.T) {
	tests := []struct {
		name  string
		items []LineItem
		want  bool
	}{
		{"empty", nil, true},
		{"small", []LineItem{{ProductID: "p1", UnitPrice: 999, Quantity: 5}}, true},
		{"exact max subtotal", []LineItem{{ProductID: "p1", UnitPrice: math.MaxInt64, Quantity: 1}}, true},
		{"free lines at max count", []LineItem{{ProductID: "p1", Quantity: math.MaxInt}}, true},
		{"line total overflows", []LineItem{{ProductID: "p1", UnitPrice: math.MaxInt64/2 + 1, Quantity: 2}}, false},
		{"subtotal overflows", []LineItem{
			{ProductID: "p1", UnitPrice: math.MaxInt64, Quantity: 1},
			{ProductID: "p2", UnitPrice: 1, Quantity: 1},
		}, false},
		{"item count overflows", []LineItem{
			{ProductID: "p1", Quantity: math.MaxInt},
			{ProductID: "p2", Quantity: 1},
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalsFit(tt.items))
		})
	}
}
