// Package catalog exposes read-only product queries to the storefront.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/domain"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/repository"
	apperrors "github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/errors"
)

// DefaultRelatedLimit is used when Related is called with limit <= 0.
const DefaultRelatedLimit = 4

// relatedScan bounds how many same-category products Related considers.
const relatedScan = 96

// Service implements catalog queries on top of a ProductRepository.
type Service struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewService creates a new catalog service.
func NewService(repo repository.ProductRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns one page of products matching filter and the total count.
func (s *Service) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

// Get returns the product with id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// GetBySlug returns the product with slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if slug == "" {
		return nil, apperrors.InvalidInput("slug is required")
	}
	return s.repo.GetBySlug(ctx, slug)
}

// Related returns up to limit products from the same category as id,
// excluding id itself, bestsellers first.
func (s *Service) Related(ctx context.Context, id string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	candidates, _, err := s.repo.List(ctx, repository.ProductFilter{
		Category: p.Category,
		Sort:     repository.SortNewest,
		Page:     1,
		PerPage:  relatedScan,
	})
	if err != nil {
		return nil, fmt.Errorf("list related products: %w", err)
	}

	var best, rest []domain.Product
	for _, c := range candidates {
		if c.ID == p.ID {
			continue
		}
		if c.IsBestseller {
			best = append(best, c)
		} else {
			rest = append(rest, c)
		}
	}

	related := append(best, rest...)
	if len(related) > limit {
		related = related[:limit]
	}
	if related == nil {
		related = []domain.Product{}
	}

	s.logger.DebugContext(ctx, "related products resolved",
		slog.String("product_id", id),
		slog.Int("count", len(related)),
	)
	return related, nil
}
