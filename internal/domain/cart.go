package domain

import "math"

// Key identifies a line item. Two items with the same product and a
// different variant are distinct lines.
type Key struct {
	ProductID string `json:"product_id"`
	Variant   string `json:"variant"`
}

// LineItem is one line of a cart. UnitPrice is in minor units (paise) and is
// snapshotted when the line is first added.
type LineItem struct {
	ProductID string `json:"product_id"`
	Variant   string `json:"variant"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Name      string `json:"name,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

// Key returns the identity of the line.
func (li LineItem) Key() Key {
	return Key{ProductID: li.ProductID, Variant: li.Variant}
}

// LineTotal returns quantity times unit price.
func (li LineItem) LineTotal() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

// ItemMetadata is the display data copied onto a new line.
type ItemMetadata struct {
	Name     string
	ImageURL string
}

// Totals are derived from the items on every read, never stored.
type Totals struct {
	ItemCount int   `json:"item_count"`
	Subtotal  int64 `json:"subtotal"`
}

// ComputeTotals sums quantities and line totals over items. Stores only hold
// items for which TotalsFit holds.
func ComputeTotals(items []LineItem) Totals {
	var t Totals
	for _, it := range items {
		t.ItemCount += it.Quantity
		t.Subtotal += it.LineTotal()
	}
	return t
}

// TotalsFit reports whether every line total and both cart totals of items
// fit their integer types. Items must already have quantity >= 1 and a
// non-negative price.
func TotalsFit(items []LineItem) bool {
	var count int
	var subtotal int64
	for _, it := range items {
		if count > math.MaxInt-it.Quantity {
			return false
		}
		count += it.Quantity
		if it.UnitPrice != 0 && int64(it.Quantity) > math.MaxInt64/it.UnitPrice {
			return false
		}
		line := it.LineTotal()
		if subtotal > math.MaxInt64-line {
			return false
		}
		subtotal += line
	}
	return true
}

// CartState is a point-in-time copy of a cart.
type CartState struct {
	Items  []LineItem `json:"items"`
	IsOpen bool       `json:"is_open"`
}

// Totals returns the derived totals of the state.
func (s CartState) Totals() Totals {
	return ComputeTotals(s.Items)
}

// IndexOf returns the position of the line with key k, or -1.
func IndexOf(items []LineItem, k Key) int {
	for i := range items {
		if items[i].ProductID == k.ProductID && items[i].Variant == k.Variant {
			return i
		}
	}
	return -1
}
