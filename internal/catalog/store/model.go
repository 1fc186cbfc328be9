package store

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// categories is the closed, ordered set a product category must belong to.
var categories = []string{"Electronics", "Accessories", "Software", "Books", "Gaming"}

// Categories returns a copy of the category enumeration in declaration order.
func Categories() []string {
	return slices.Clone(categories)
}

// IsValidCategory reports whether category is one of the enumeration values (exact match).
func IsValidCategory(category string) bool {
	return slices.Contains(categories, category)
}

// Product represents a product entity in the store.
type Product struct {
	ID          int
	Name        string
	Category    string
	Price       decimal.Decimal
	Stock       int
	Description string
	Rating      float64
	CreatedAt   Date
}

// NewProduct holds the caller-supplied fields of a product before the store assigns ID and CreatedAt.
type NewProduct struct {
	Name        string
	Category    string
	Price       decimal.Decimal
	Stock       int
	Description string
	Rating      float64
}

// DateLayout is the wire format of Date.
const DateLayout = time.DateOnly

// Date is a calendar date without time of day, serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in t's location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// MustParseDate is like ParseDate but panics on error. Intended for fixed seed data.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
