package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/repository"
	apperrors "github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/errors"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/pagination"
)

var validSorts = map[string]bool{
	repository.SortNewest:    true,
	repository.SortPriceAsc:  true,
	repository.SortPriceDesc: true,
	repository.SortName:      true,
}

// ParseFilter builds a ProductFilter from listing query parameters:
// category, type, region, fabric, bestseller, min_price, max_price, q, sort,
// page and per_page. Prices are in minor units. Unknown parameters are
// ignored; malformed numbers and unknown sorts are rejected.
func ParseFilter(q url.Values) (repository.ProductFilter, error) {
	f := repository.ProductFilter{
		Category: strings.TrimSpace(q.Get("category")),
		Type:     strings.TrimSpace(q.Get("type")),
		Region:   strings.TrimSpace(q.Get("region")),
		Fabric:   strings.TrimSpace(q.Get("fabric")),
		Search:   strings.TrimSpace(q.Get("q")),
		Sort:     strings.TrimSpace(q.Get("sort")),
	}

	if v := q.Get("bestseller"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, apperrors.InvalidInput(fmt.Sprintf("bestseller must be a boolean, got %q", v))
		}
		f.Bestseller = &b
	}

	var err error
	if f.MinPrice, err = parsePrice(q, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parsePrice(q, "max_price"); err != nil {
		return f, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return f, apperrors.InvalidInput("min_price must not exceed max_price")
	}

	if f.Sort == "" {
		f.Sort = repository.SortNewest
	} else if !validSorts[f.Sort] {
		return f, apperrors.InvalidInput(fmt.Sprintf("unknown sort %q", f.Sort))
	}

	for _, name := range []string{"page", "per_page"} {
		if v := q.Get(name); v != "" {
			if _, err := strconv.Atoi(v); err != nil {
				return f, apperrors.InvalidInput(fmt.Sprintf("%s must be an integer, got %q", name, v))
			}
		}
	}
	p := pagination.FromValues(q)
	f.Page, f.PerPage = p.Page, p.PerPage

	return f, nil
}

func parsePrice(q url.Values, name string) (*int64, error) {
	v := q.Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return nil, apperrors.InvalidInput(fmt.Sprintf("%s must be a non-negative integer, got %q", name, v))
	}
	return &n, nil
}
