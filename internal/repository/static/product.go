// Package static serves the catalog from an in-memory product list.
package static

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/domain"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/repository"
	apperrors "github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/errors"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/pagination"
)

// ProductRepository implements repository.ProductRepository over a fixed slice.
type ProductRepository struct {
	products []domain.Product
	byID     map[string]int
	bySlug   map[string]int
}

// NewProductRepository indexes products. Later duplicates of an ID or slug
// are ignored.
func NewProductRepository(products []domain.Product) *ProductRepository {
	r := &ProductRepository{
		byID:   make(map[string]int, len(products)),
		bySlug: make(map[string]int, len(products)),
	}
	for _, p := range products {
		if _, dup := r.byID[p.ID]; dup {
			continue
		}
		r.products = append(r.products, p)
		idx := len(r.products) - 1
		r.byID[p.ID] = idx
		if _, dup := r.bySlug[p.Slug]; !dup {
			r.bySlug[p.Slug] = idx
		}
	}
	return r
}

// GetByID retrieves a product by its identifier.
func (r *ProductRepository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	p := r.products[i]
	return &p, nil
}

// GetBySlug retrieves a product by its slug.
func (r *ProductRepository) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	i, ok := r.bySlug[slug]
	if !ok {
		return nil, apperrors.NotFound("product", slug)
	}
	p := r.products[i]
	return &p, nil
}

// List filters, sorts and paginates the catalog.
func (r *ProductRepository) List(_ context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	matched := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if matches(&p, &filter) {
			matched = append(matched, p)
		}
	}

	sortProducts(matched, filter.Sort)

	params := pagination.New(filter.Page, filter.PerPage)
	start, end := params.Window(len(matched))
	return matched[start:end], len(matched), nil
}

func matches(p *domain.Product, f *repository.ProductFilter) bool {
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.Type != "" && !strings.EqualFold(p.Type, f.Type) {
		return false
	}
	if f.Region != "" && !strings.EqualFold(p.Region, f.Region) {
		return false
	}
	if f.Fabric != "" && !strings.EqualFold(p.Fabric, f.Fabric) {
		return false
	}
	if f.Bestseller != nil && p.IsBestseller != *f.Bestseller {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	return true
}

func sortProducts(products []domain.Product, order string) {
	var less func(a, b domain.Product) int
	switch order {
	case repository.SortPriceAsc:
		less = func(a, b domain.Product) int { return cmp.Compare(a.Price, b.Price) }
	case repository.SortPriceDesc:
		less = func(a, b domain.Product) int { return cmp.Compare(b.Price, a.Price) }
	case repository.SortName:
		less = func(a, b domain.Product) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	default:
		less = func(a, b domain.Product) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
	slices.SortStableFunc(products, func(a, b domain.Product) int {
		if c := less(a, b); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
