package repository

import (
	"context"

	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/domain"
)

// SnapshotRepository stores one opaque cart snapshot per key.
type SnapshotRepository interface {
	// Load returns the snapshot under key, or an apperrors.NotFound error.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save overwrites the snapshot under key.
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes the snapshot under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Sort orders accepted by ProductFilter.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortName      = "name"
)

// ProductFilter defines filter criteria for listing products. Zero values
// mean "no constraint".
type ProductFilter struct {
	Category   string
	Type       string
	Region     string
	Fabric     string
	Bestseller *bool
	MinPrice   *int64
	MaxPrice   *int64
	Search     string
	Sort       string
	Page       int
	PerPage    int
}

// ProductRepository is the read-only catalog.
type ProductRepository interface {
	// GetByID retrieves a product by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// GetBySlug retrieves a product by its URL slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)

	// List returns one page of products matching filter and the total match count.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)
}
