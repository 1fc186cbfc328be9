package service

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/abgdnv/productcatalog/internal/catalog/store"
	"github.com/shopspring/decimal"
)

// ListQuery holds the optional filter and sort options of List.
// A nil bound leaves that side of the price range open.
type ListQuery struct {
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SortBy   string
	Order    string
}

// SearchQuery holds the optional criteria of Search.
type SearchQuery struct {
	Q        string
	Category string
}

// List filters by the inclusive price range, then sorts.
// An unknown SortBy keeps insertion order.
func (s *Service) List(ctx context.Context, query ListQuery) ([]ProductDto, error) {
	products, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	products = slices.DeleteFunc(products, func(p store.Product) bool {
		return !inPriceRange(p.Price, query.MinPrice, query.MaxPrice)
	})

	if compare := comparator(query.SortBy); compare != nil {
		if strings.EqualFold(query.Order, "desc") {
			slices.SortStableFunc(products, func(a, b store.Product) int {
				return compare(b, a)
			})
		} else {
			slices.SortStableFunc(products, compare)
		}
	}

	return toDtos(products), nil
}

// Search matches Q as a case-insensitive substring of the name and Category
// as a case-insensitive category name. Empty criteria match everything.
func (s *Service) Search(ctx context.Context, query SearchQuery) ([]ProductDto, error) {
	products, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query.Q)
	products = slices.DeleteFunc(products, func(p store.Product) bool {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			return true
		}
		return query.Category != "" && !strings.EqualFold(p.Category, query.Category)
	})

	return toDtos(products), nil
}

// ListByCategory returns the products whose category equals category, ignoring case.
// An unknown category yields an empty result.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]ProductDto, error) {
	products, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	products = slices.DeleteFunc(products, func(p store.Product) bool {
		return !strings.EqualFold(p.Category, category)
	})

	return toDtos(products), nil
}

func inPriceRange(price decimal.Decimal, lower, upper *decimal.Decimal) bool {
	if lower != nil && price.LessThan(*lower) {
		return false
	}
	if upper != nil && price.GreaterThan(*upper) {
		return false
	}
	return true
}

// comparator returns the ascending ordering for sortBy, or nil when sortBy is not a sort key.
func comparator(sortBy string) func(a, b store.Product) int {
	switch sortBy {
	case "id":
		return func(a, b store.Product) int { return cmp.Compare(a.ID, b.ID) }
	case "name":
		return func(a, b store.Product) int { return strings.Compare(a.Name, b.Name) }
	case "price":
		return func(a, b store.Product) int { return a.Price.Cmp(b.Price) }
	case "rating":
		return func(a, b store.Product) int { return cmp.Compare(a.Rating, b.Rating) }
	case "stock":
		return func(a, b store.Product) int { return cmp.Compare(a.Stock, b.Stock) }
	default:
		return nil
	}
}
