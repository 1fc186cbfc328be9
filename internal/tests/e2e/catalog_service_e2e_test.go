// Package e2e provides end-to-end tests for the catalog service.
// The real router, middleware and in-memory store run behind an httptest.Server.
// Every test starts from a fresh store, seeded with the three sample products unless it asks otherwise.
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/abgdnv/productcatalog/internal/catalog/app"
	"github.com/abgdnv/productcatalog/internal/catalog/service"
	"github.com/abgdnv/productcatalog/internal/platform/messaging"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// skipE2ETests is the environment variable that can be set to skip E2E tests.
const skipE2ETests = "CATALOG_SKIP_E2E_TESTS"

const productsURL = "/products"

// CatalogServiceE2ESuite is a test suite for end-to-end tests of the catalog service.
type CatalogServiceE2ESuite struct {
	suite.Suite
	server     *httptest.Server
	httpClient *http.Client
	logger     *slog.Logger
	ctx        context.Context
}

func TestCatalogServiceE2E(t *testing.T) {
	if os.Getenv(skipE2ETests) == "1" {
		t.Skip("Skipping E2E tests based on " + skipE2ETests + " env var")
	}
	suite.Run(t, new(CatalogServiceE2ESuite))
}

func (s *CatalogServiceE2ESuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetupTest starts a server over a freshly seeded store.
func (s *CatalogServiceE2ESuite) SetupTest() {
	s.startServer(true)
}

func (s *CatalogServiceE2ESuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
		s.server = nil
	}
}

func (s *CatalogServiceE2ESuite) startServer(seed bool) {
	if s.server != nil {
		s.server.Close()
	}
	deps := app.SetupDependencies(seed, messaging.NopPublisher{}, s.logger)
	s.server = httptest.NewServer(app.SetupHttpHandler(deps))
	s.httpClient = s.server.Client()
}

// --------------------------------------------------------------------------
// ---------- Payload structures and Helper methods for E2E tests -----------
// --------------------------------------------------------------------------

type listPayload struct {
	Total    int                  `json:"total"`
	Products []service.ProductDto `json:"products"`
}

type searchPayload struct {
	TotalResults int                  `json:"total_results"`
	Results      []service.ProductDto `json:"results"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// doRequest sends payload as JSON (raw when it is a string) and returns the response body and status code.
func (s *CatalogServiceE2ESuite) doRequest(method, path string, payload any) ([]byte, *http.Response) {
	s.T().Helper()
	var body io.Reader
	switch p := payload.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(p)
	default:
		payloadBytes, err := json.Marshal(p)
		require.NoError(s.T(), err)
		body = bytes.NewBuffer(payloadBytes)
	}

	req, err := http.NewRequestWithContext(s.ctx, method, s.server.URL+path, body)
	require.NoError(s.T(), err, "Failed to create HTTP request")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err, "HTTP request failed")
	defer func() {
		require.NoError(s.T(), resp.Body.Close(), "Failed to close response body")
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err, "Failed to read response body")
	return bodyBytes, resp
}

func (s *CatalogServiceE2ESuite) decode(body []byte, dst any) {
	s.T().Helper()
	require.NoError(s.T(), json.Unmarshal(body, dst), "Failed to decode response: %s", body)
}

func (s *CatalogServiceE2ESuite) createProduct(payload any) (service.ProductDto, int) {
	s.T().Helper()
	body, resp := s.doRequest(http.MethodPost, productsURL, payload)
	var product service.ProductDto
	if resp.StatusCode == http.StatusCreated {
		s.decode(body, &product)
	}
	return product, resp.StatusCode
}

func (s *CatalogServiceE2ESuite) findByID(id int) (service.ProductDto, int) {
	s.T().Helper()
	body, resp := s.doRequest(http.MethodGet, fmt.Sprintf("%s/%d", productsURL, id), nil)
	var product service.ProductDto
	if resp.StatusCode == http.StatusOK {
		s.decode(body, &product)
	}
	return product, resp.StatusCode
}

func (s *CatalogServiceE2ESuite) list(query string) listPayload {
	s.T().Helper()
	body, resp := s.doRequest(http.MethodGet, productsURL+query, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	var payload listPayload
	s.decode(body, &payload)
	return payload
}

func productIDs(products []service.ProductDto) []int {
	ids := make([]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

// --------------------------------------------------------------
// ---------------------- E2E test methods ----------------------
// --------------------------------------------------------------

func (s *CatalogServiceE2ESuite) TestSeededCatalog_E2E() {
	// when
	payload := s.list("")

	// then
	s.Equal(3, payload.Total)
	s.Equal([]int{1, 2, 3}, productIDs(payload.Products))
	s.Equal("Laptop Pro 15", payload.Products[0].Name)
	s.Equal("2024-01-15", payload.Products[0].CreatedAt.String())
}

func (s *CatalogServiceE2ESuite) TestCreateGetDelete_E2E() {
	// given
	s.startServer(false)

	// when
	created, status := s.createProduct(map[string]any{
		"name": "Mouse", "category": "Accessories", "price": 29.99, "stock": 150,
	})

	// then
	s.Require().Equal(http.StatusCreated, status)
	s.Equal(1, created.ID)
	s.Equal(0.0, created.Rating)
	s.False(created.CreatedAt.IsZero())

	found, status := s.findByID(created.ID)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(created.Name, found.Name)
	s.True(created.Price.Equal(found.Price))
	s.Equal(created.CreatedAt, found.CreatedAt)

	body, resp := s.doRequest(http.MethodDelete, fmt.Sprintf("%s/%d", productsURL, created.ID), nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.JSONEq(`{"message":"Product deleted successfully","product_id":1}`, string(body))

	_, status = s.findByID(created.ID)
	s.Equal(http.StatusNotFound, status)
}

func (s *CatalogServiceE2ESuite) TestIDsAreNotReused_E2E() {
	// given
	_, resp := s.doRequest(http.MethodDelete, productsURL+"/3", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	// when
	created, status := s.createProduct(map[string]any{
		"name": "Dock", "category": "Accessories", "price": 99, "stock": 1,
	})

	// then
	s.Require().Equal(http.StatusCreated, status)
	s.Equal(4, created.ID)
}

func (s *CatalogServiceE2ESuite) TestPriceFilter_E2E() {
	// given
	s.startServer(false)
	for _, price := range []float64{10.00, 30.00} {
		_, status := s.createProduct(map[string]any{
			"name": "Book", "category": "Books", "price": price, "stock": 1,
		})
		s.Require().Equal(http.StatusCreated, status)
	}

	// when
	payload := s.list("?min_price=20")

	// then
	s.Require().Equal(1, payload.Total)
	s.Equal("30", payload.Products[0].Price.String())
}

func (s *CatalogServiceE2ESuite) TestSortAndFilter_E2E() {
	testCases := []struct {
		name     string
		query    string
		expected []int
	}{
		{name: "price ascending", query: "?sort_by=price", expected: []int{2, 3, 1}},
		{name: "price descending", query: "?sort_by=price&order=desc", expected: []int{1, 3, 2}},
		{name: "rating descending", query: "?sort_by=rating&order=desc", expected: []int{3, 1, 2}},
		{name: "unknown sort key", query: "?sort_by=weight", expected: []int{1, 2, 3}},
		{name: "price window", query: "?min_price=29.99&max_price=49.99", expected: []int{2, 3}},
		{name: "empty window", query: "?min_price=5000", expected: []int{}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			// when
			payload := s.list(tc.query)

			// then
			s.Equal(tc.expected, productIDs(payload.Products))
			s.Equal(len(tc.expected), payload.Total)
		})
	}
}

func (s *CatalogServiceE2ESuite) TestUpdate_E2E() {
	// given
	before, status := s.findByID(2)
	s.Require().Equal(http.StatusOK, status)

	// when: one invalid field among valid ones
	body, resp := s.doRequest(http.MethodPut, productsURL+"/2", map[string]any{
		"name": "Renamed", "stock": 1, "category": "Furniture",
	})

	// then
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	var errBody errorPayload
	s.decode(body, &errBody)
	s.Contains(errBody.Error, "Invalid category")
	after, _ := s.findByID(2)
	s.Equal(before.Name, after.Name)
	s.Equal(before.Stock, after.Stock)

	// when: a valid partial update
	body, resp = s.doRequest(http.MethodPut, productsURL+"/2", map[string]any{"stock": 149})

	// then
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var updated service.ProductDto
	s.decode(body, &updated)
	s.Equal(149, updated.Stock)
	s.Equal(before.Name, updated.Name)
	s.Equal(before.CreatedAt, updated.CreatedAt)
}

func (s *CatalogServiceE2ESuite) TestSearch_E2E() {
	testCases := []struct {
		name     string
		query    string
		expected []int
	}{
		{name: "no criteria", query: "", expected: []int{1, 2, 3}},
		{name: "name substring", query: "?q=usb", expected: []int{3}},
		{name: "category", query: "?category=accessories", expected: []int{2, 3}},
		{name: "name within category", query: "?q=o&category=Accessories", expected: []int{2}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			// when
			body, resp := s.doRequest(http.MethodGet, productsURL+"/search"+tc.query, nil)

			// then
			s.Require().Equal(http.StatusOK, resp.StatusCode)
			var payload searchPayload
			s.decode(body, &payload)
			s.Equal(tc.expected, productIDs(payload.Results))
			s.Equal(len(tc.expected), payload.TotalResults)
		})
	}
}

func (s *CatalogServiceE2ESuite) TestCategories_E2E() {
	// when
	categoriesBody, categoriesResp := s.doRequest(http.MethodGet, "/categories", nil)
	groupsBody, groupsResp := s.doRequest(http.MethodGet, "/categories/groups", nil)
	byCategoryBody, byCategoryResp := s.doRequest(http.MethodGet, productsURL+"/category/software", nil)

	// then
	s.Equal(http.StatusOK, categoriesResp.StatusCode)
	s.JSONEq(`{"total":5,"categories":["Electronics","Accessories","Software","Books","Gaming"]}`, string(categoriesBody))
	s.Equal(http.StatusOK, groupsResp.StatusCode)
	s.JSONEq(`{"total":2,"groups":[
		{"category":"Electronics","count":1,"total_stock":45},
		{"category":"Accessories","count":2,"total_stock":230}
	]}`, string(groupsBody))
	s.Equal(http.StatusOK, byCategoryResp.StatusCode)
	s.JSONEq(`{"category":"software","total":0,"products":[]}`, string(byCategoryBody))
}

func (s *CatalogServiceE2ESuite) TestStats_E2E() {
	// when
	body, resp := s.doRequest(http.MethodGet, "/stats", nil)

	// then
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.JSONEq(`{
		"total_products": 3,
		"total_inventory_value": 66997.25,
		"average_price": 459.99,
		"average_rating": 4.47,
		"total_stock": 275,
		"categories": {
			"Electronics": {"count": 1, "total_stock": 45},
			"Accessories": {"count": 2, "total_stock": 230}
		}
	}`, string(body))
}

func (s *CatalogServiceE2ESuite) TestStats_EmptyCatalog_E2E() {
	// given
	s.startServer(false)

	// when
	body, resp := s.doRequest(http.MethodGet, "/stats", nil)

	// then
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.JSONEq(`{"total_products":0,"total_inventory_value":0,"average_price":0,"average_rating":0,"total_stock":0,"categories":{}}`, string(body))
}

func (s *CatalogServiceE2ESuite) TestErrors_E2E() {
	testCases := []struct {
		name         string
		method       string
		path         string
		payload      any
		expectedCode int
		expectedBody string
	}{
		{
			name:         "non-integer id",
			method:       http.MethodGet,
			path:         productsURL + "/abc",
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid ID: abc"}`,
		},
		{
			name:         "unknown id",
			method:       http.MethodDelete,
			path:         productsURL + "/999",
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Product not found"}`,
		},
		{
			name:         "non-numeric bound",
			method:       http.MethodGet,
			path:         productsURL + "?max_price=lots",
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid max_price number: lots"}`,
		},
		{
			name:         "malformed body",
			method:       http.MethodPost,
			path:         productsURL,
			payload:      `{"name": "Mouse",`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid request body"}`,
		},
		{
			name:         "missing field",
			method:       http.MethodPost,
			path:         productsURL,
			payload:      map[string]any{"name": "Mouse", "category": "Accessories", "price": 1},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Missing required field: stock"}`,
		},
		{
			name:         "negative price",
			method:       http.MethodPost,
			path:         productsURL,
			payload:      map[string]any{"name": "Mouse", "category": "Accessories", "price": -1, "stock": 1},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Price cannot be negative"}`,
		},
		{
			name:         "wrong stock type",
			method:       http.MethodPost,
			path:         productsURL,
			payload:      map[string]any{"name": "Mouse", "category": "Accessories", "price": 1, "stock": "ten"},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid value for field: stock"}`,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			// when
			body, resp := s.doRequest(tc.method, tc.path, tc.payload)

			// then
			s.Equal(tc.expectedCode, resp.StatusCode)
			s.JSONEq(tc.expectedBody, string(body))
		})
	}

	// the rejected creates above left the store untouched
	s.Equal(3, s.list("").Total)
}

func (s *CatalogServiceE2ESuite) TestHealthAndRequestID_E2E() {
	// when
	body, resp := s.doRequest(http.MethodGet, "/health", nil)

	// then
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var health struct {
		Status        string `json:"status"`
		Timestamp     string `json:"timestamp"`
		TotalProducts int    `json:"total_products"`
	}
	s.decode(body, &health)
	s.Equal("healthy", health.Status)
	s.NotEmpty(health.Timestamp)
	s.Equal(3, health.TotalProducts)
	s.NotEmpty(resp.Header.Get(middleware.RequestIDHeader))
}
