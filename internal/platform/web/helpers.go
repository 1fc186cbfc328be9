// Package web holds the HTTP helpers and middleware shared by the REST transport.
package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// RespondError writes the {"error": message} envelope used for every failure response.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"error": message})
}

// ParseID extracts and validates the integer ID from the request path. Returns the ID and a boolean indicating success.
// The chi URL param is preferred, r.PathValue covers handlers invoked without the chi router.
func ParseID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int, bool) {
	pathValueID := chi.URLParam(r, "id")
	if pathValueID == "" {
		pathValueID = r.PathValue("id")
	}
	id, err := strconv.Atoi(pathValueID)
	if err != nil {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid ID: %s", pathValueID))
		return 0, false
	}
	return id, true
}
