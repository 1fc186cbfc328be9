package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"
)

// ParseOptionalDecimal reads a decimal url parameter.
// An absent or empty parameter yields nil with ok=true; a non-numeric one is answered with 400 and ok=false.
func ParseOptionalDecimal(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string) (*decimal.Decimal, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, value))
		return nil, false
	}
	return &d, true
}
