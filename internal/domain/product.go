package domain

import (
	"slices"
	"time"
)

// Product categories carried by the storefront.
const (
	CategorySarees = "sarees"
	CategoryKurtas = "kurtas"
)

// Product is a catalog entry. Price is in minor units (paise).
type Product struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Price        int64     `json:"price"`
	ImageURL     string    `json:"image_url"`
	Category     string    `json:"category"`
	IsBestseller bool      `json:"is_bestseller"`
	Type         string    `json:"type,omitempty"`
	Region       string    `json:"region,omitempty"`
	Fabric       string    `json:"fabric,omitempty"`
	Sizes        []string  `json:"sizes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// AcceptsVariant reports whether variant can be ordered. Products without
// sizes accept only the empty variant.
func (p *Product) AcceptsVariant(variant string) bool {
	if len(p.Sizes) == 0 {
		return variant == ""
	}
	return slices.Contains(p.Sizes, variant)
}
