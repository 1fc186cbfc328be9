// Package rest provides HTTP handlers for catalog operations.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	catalogerrors "github.com/abgdnv/productcatalog/internal/catalog/errors"
	"github.com/abgdnv/productcatalog/internal/catalog/service"
	"github.com/abgdnv/productcatalog/internal/platform/web"
	"github.com/go-chi/chi/v5"
)

const (
	ServiceName        = "E-Commerce Product Catalog API"
	ServiceVersion     = "1.0.0"
	ServiceDescription = "RESTful API for managing product catalog"
)

type Handler struct {
	service service.CatalogService
	logger  *slog.Logger
	now     func() time.Time
}

// NewHandler creates a new instance of Handler with the provided service.
func NewHandler(service service.CatalogService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "rest"),
		now:     time.Now,
	}
}

// RegisterRoutes registers the HTTP routes for the catalog service.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/health", h.HealthCheck)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/search", h.Search)
		r.Get("/category/{category}", h.ListByCategory)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.Categories)
		r.Get("/groups", h.GroupByCategory)
	})

	r.Get("/stats", h.Stats)
}

type homeResponse struct {
	Service     string            `json:"service"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}

type healthResponse struct {
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	TotalProducts int    `json:"total_products"`
}

type listResponse struct {
	Total    int                  `json:"total"`
	Products []service.ProductDto `json:"products"`
}

type searchResponse struct {
	Query        string               `json:"query"`
	Category     string               `json:"category"`
	TotalResults int                  `json:"total_results"`
	Results      []service.ProductDto `json:"results"`
}

type categoryResponse struct {
	Category string               `json:"category"`
	Total    int                  `json:"total"`
	Products []service.ProductDto `json:"products"`
}

type categoriesResponse struct {
	Total      int      `json:"total"`
	Categories []string `json:"categories"`
}

type groupsResponse struct {
	Total  int                     `json:"total"`
	Groups []service.CategoryGroup `json:"groups"`
}

type deleteResponse struct {
	Message   string `json:"message"`
	ProductID int    `json:"product_id"`
}

// Home describes the service and its endpoints.
func (h *Handler) Home(w http.ResponseWriter, _ *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, homeResponse{
		Service:     ServiceName,
		Version:     ServiceVersion,
		Description: ServiceDescription,
		Endpoints: map[string]string{
			"/products":                     "GET - List all products, POST - Add new product",
			"/products/{id}":                "GET - Get product details, PUT - Update product, DELETE - Remove product",
			"/products/search":              "GET - Search products by name or category",
			"/products/category/{category}": "GET - Get products by category",
			"/categories":                   "GET - List all categories",
			"/categories/groups":            "GET - Product count and stock per category",
			"/stats":                        "GET - Get catalog statistics",
			"/health":                       "GET - Health check endpoint",
		},
	})
}

// HealthCheck reports liveness with the current product count.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error counting products", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to count products")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, healthResponse{
		Status:        "healthy",
		Timestamp:     h.now().UTC().Format(time.RFC3339),
		TotalProducts: count,
	})
}

// List returns products filtered by min_price/max_price and sorted by sort_by/order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	minPrice, ok := web.ParseOptionalDecimal(r, w, h.logger, "min_price")
	if !ok {
		return
	}
	maxPrice, ok := web.ParseOptionalDecimal(r, w, h.logger, "max_price")
	if !ok {
		return
	}
	query := service.ListQuery{
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		SortBy:   r.URL.Query().Get("sort_by"),
		Order:    r.URL.Query().Get("order"),
	}

	h.logger.DebugContext(r.Context(), "Received request to list products", "sort_by", query.SortBy, "order", query.Order)
	products, err := h.service.List(r.Context(), query)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, listResponse{Total: len(products), Products: products})
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, fmt.Sprintf("Failed to retrieve product with ID %d", id), "ID", id)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var draft service.ProductDraft
	if !h.decodeBody(w, r, &draft) {
		return
	}

	created, err := h.service.Create(r.Context(), draft)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to create product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

// Update applies a partial update to a product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	var patch service.ProductPatch
	if !h.decodeBody(w, r, &patch) {
		return
	}

	updated, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		h.respondServiceError(w, r, err, fmt.Sprintf("Failed to update product with ID %d", id), "ID", id)
		return
	}
	h.logger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err, fmt.Sprintf("Failed to delete product with ID %d", id), "ID", id)
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	web.RespondJSON(w, h.logger, http.StatusOK, deleteResponse{Message: "Product deleted successfully", ProductID: id})
}

// Search matches products by name substring (q) and category.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := service.SearchQuery{
		Q:        r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}

	results, err := h.service.Search(r.Context(), query)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error searching products", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to search products")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, searchResponse{
		Query:        query.Q,
		Category:     query.Category,
		TotalResults: len(results),
		Results:      results,
	})
}

// ListByCategory returns the products of the category in the path.
func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	products, err := h.service.ListByCategory(r.Context(), category)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error retrieving products by category", "category", category, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, categoryResponse{Category: category, Total: len(products), Products: products})
}

// Categories lists every category, including ones without products.
func (h *Handler) Categories(w http.ResponseWriter, _ *http.Request) {
	categories := h.service.Categories()
	web.RespondJSON(w, h.logger, http.StatusOK, categoriesResponse{Total: len(categories), Categories: categories})
}

// GroupByCategory reports count and stock for each category that has products.
func (h *Handler) GroupByCategory(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.GroupByCategory(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error grouping products", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to group products")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, groupsResponse{Total: len(groups), Groups: groups})
}

// Stats returns catalog statistics.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error computing statistics", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, stats)
}

// decodeBody decodes the JSON body into dst and answers 400 on failure.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		web.RespondError(w, h.logger, http.StatusBadRequest, fmt.Sprintf("Invalid value for field: %s", typeErr.Field))
		return false
	}
	web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
	return false
}

// respondServiceError maps service errors to status codes: validation 400, not found 404, anything else 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, internalMessage string, attrs ...any) {
	var validationErr *catalogerrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		h.logger.WarnContext(r.Context(), "Validation failed", append(attrs, "field", validationErr.Field, "error", err)...)
		web.RespondError(w, h.logger, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, catalogerrors.ErrProductNotFound):
		h.logger.WarnContext(r.Context(), "Product not found", append(attrs, "error", err)...)
		web.RespondError(w, h.logger, http.StatusNotFound, "Product not found")
	default:
		h.logger.ErrorContext(r.Context(), internalMessage, append(attrs, "error", err)...)
		web.RespondError(w, h.logger, http.StatusInternalServerError, internalMessage)
	}
}
