package store

import "github.com/shopspring/decimal"

// SeedProducts returns the products the catalog starts with when seeding is enabled.
func SeedProducts() []Product {
	return []Product{
		{
			ID:          1,
			Name:        "Laptop Pro 15",
			Category:    "Electronics",
			Price:       decimal.RequireFromString("1299.99"),
			Stock:       45,
			Description: "High-performance laptop with 16GB RAM and 512GB SSD",
			Rating:      4.5,
			CreatedAt:   MustParseDate("2024-01-15"),
		},
		{
			ID:          2,
			Name:        "Wireless Mouse",
			Category:    "Accessories",
			Price:       decimal.RequireFromString("29.99"),
			Stock:       150,
			Description: "Ergonomic wireless mouse with USB receiver",
			Rating:      4.2,
			CreatedAt:   MustParseDate("2024-02-20"),
		},
		{
			ID:          3,
			Name:        "USB-C Hub",
			Category:    "Accessories",
			Price:       decimal.RequireFromString("49.99"),
			Stock:       80,
			Description: "7-in-1 USB-C hub with HDMI, USB 3.0, and SD card reader",
			Rating:      4.7,
			CreatedAt:   MustParseDate("2024-03-10"),
		},
	}
}
