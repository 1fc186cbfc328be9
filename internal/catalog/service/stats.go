package service

import (
	"context"
	"math"

	"github.com/abgdnv/productcatalog/internal/catalog/store"
	"github.com/shopspring/decimal"
)

// CategoryGroup summarizes the products of one category.
type CategoryGroup struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	TotalStock int    `json:"total_stock"`
}

// CategorySummary is the per-category entry of Stats.
type CategorySummary struct {
	Count      int `json:"count"`
	TotalStock int `json:"total_stock"`
}

// Stats holds catalog-wide figures. Money values and the average rating are rounded to 2 places.
type Stats struct {
	TotalProducts       int                        `json:"total_products"`
	TotalInventoryValue decimal.Decimal            `json:"total_inventory_value"`
	AveragePrice        decimal.Decimal            `json:"average_price"`
	AverageRating       float64                    `json:"average_rating"`
	TotalStock          int                        `json:"total_stock"`
	Categories          map[string]CategorySummary `json:"categories"`
}

const statsPrecision = 2

// GroupByCategory returns one group per category that has products, in enumeration order.
func (s *Service) GroupByCategory(ctx context.Context) ([]CategoryGroup, error) {
	products, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	summaries := summarize(products)
	groups := make([]CategoryGroup, 0, len(summaries))
	for _, category := range store.Categories() {
		summary, ok := summaries[category]
		if !ok {
			continue
		}
		groups = append(groups, CategoryGroup{
			Category:   category,
			Count:      summary.Count,
			TotalStock: summary.TotalStock,
		})
	}
	return groups, nil
}

// Stats computes totals and averages over the current products.
// All figures are zero for an empty catalog.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	products, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalProducts:       len(products),
		TotalInventoryValue: decimal.Zero,
		AveragePrice:        decimal.Zero,
		Categories:          summarize(products),
	}
	if len(products) == 0 {
		return stats, nil
	}

	priceSum := decimal.Zero
	ratingSum := 0.0
	for _, p := range products {
		priceSum = priceSum.Add(p.Price)
		stats.TotalInventoryValue = stats.TotalInventoryValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
		ratingSum += p.Rating
		stats.TotalStock += p.Stock
	}
	count := decimal.NewFromInt(int64(len(products)))
	stats.TotalInventoryValue = stats.TotalInventoryValue.Round(statsPrecision)
	stats.AveragePrice = priceSum.Div(count).Round(statsPrecision)
	stats.AverageRating = roundFloat(ratingSum/float64(len(products)), statsPrecision)

	return stats, nil
}

func summarize(products []store.Product) map[string]CategorySummary {
	summaries := make(map[string]CategorySummary)
	for _, p := range products {
		summary := summaries[p.Category]
		summary.Count++
		summary.TotalStock += p.Stock
		summaries[p.Category] = summary
	}
	return summaries
}

func roundFloat(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
