// Package config holds the configuration sections shared by service entrypoints.
// Each section knows how to render itself for startup logs and how to validate itself.
package config

import (
	"fmt"
	"strings"
)

// Section is implemented by every configuration block.
type Section interface {
	fmt.Stringer
	Validate() error
}

// section renders a titled block of key/value pairs, one pair per line.
func section(title string, kv ...any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n--- %s ---\n", title)
	writePairs(&b, kv...)
	return b.String()
}

func writePairs(b *strings.Builder, kv ...any) {
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(b, "  %v: %v\n", kv[i], kv[i+1])
	}
}

// ValidateAll returns the first validation error in sections order.
func ValidateAll(sections ...Section) error {
	for _, s := range sections {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}
