package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ordermgmt/internal/config"
	"ordermgmt/internal/order"
	"ordermgmt/internal/ratelimit"
	"ordermgmt/internal/respond"
	"ordermgmt/internal/testutil"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type orderData struct {
	ID           string `json:"id"`
	CustomerName string `json:"customer_name"`
	Item         string `json:"item"`
	Quantity     int    `json:"quantity"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type listData struct {
	Data       []orderData `json:"data"`
	Pagination struct {
		CurrentPage int  `json:"current_page"`
		PageSize    int  `json:"page_size"`
		TotalItems  int  `json:"total_items"`
		TotalPages  int  `json:"total_pages"`
		HasNext     bool `json:"has_next"`
		HasPrev     bool `json:"has_prev"`
	} `json:"pagination"`
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", APIVersion: "v1"},
		Server: config.ServerConfig{
			BodyLimitBytes:     1 << 10,
			CORSAllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

func newTestRouter(t *testing.T, limiter ratelimit.Limiter) http.Handler {
	t.Helper()

	logger := zap.NewNop()
	rs := respond.New(logger, true)
	return NewRouter(RouterDeps{
		Config:    testConfig(),
		Version:   "test",
		Orders:    order.NewModule(testutil.NewMemoryOrderStore(), rs, logger),
		Responder: rs,
		Logger:    logger,
		Limiter:   limiter,
	})
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec, resp
}

func createOrder(t *testing.T, h http.Handler, body string) orderData {
	t.Helper()
	rec, resp := do(t, h, http.MethodPost, "/api/v1/orders", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var o orderData
	require.NoError(t, json.Unmarshal(resp.Data, &o))
	return o
}

func TestScenarioA_CreateDefaultsToPending(t *testing.T) {
	h := newTestRouter(t, nil)

	rec, resp := do(t, h, http.MethodPost, "/api/v1/orders", `{"customer_name":"Ana","item":"Widget","quantity":3}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
	var o orderData
	require.NoError(t, json.Unmarshal(resp.Data, &o))
	assert.Equal(t, "pending", o.Status)
	_, err := uuid.Parse(o.ID)
	assert.NoError(t, err)
	assert.NotEmpty(t, o.CreatedAt)
	assert.Empty(t, o.UpdatedAt)
}

func TestScenarioB_EmptyCustomerName(t *testing.T) {
	h := newTestRouter(t, nil)

	rec, resp := do(t, h, http.MethodPost, "/api/v1/orders", `{"customer_name":"","item":"Widget","quantity":3}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Customer name is required", resp.Error)
}

func TestScenarioC_EmptyFilteredList(t *testing.T) {
	h := newTestRouter(t, nil)

	rec, resp := do(t, h, http.MethodGet, "/api/v1/orders?page=1&page_size=5&status=pending", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var list listData
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.NotNil(t, list.Data)
	assert.Empty(t, list.Data)
	assert.Equal(t, 0, list.Pagination.TotalItems)
	assert.Equal(t, 5, list.Pagination.PageSize)
	assert.Contains(t, string(resp.Data), `"data":[]`)
}

func TestScenarioD_UpdateWithEmptyObject(t *testing.T) {
	h := newTestRouter(t, nil)
	o := createOrder(t, h, `{"customer_name":"Ana","item":"Widget","quantity":3}`)

	rec, resp := do(t, h, http.MethodPut, "/api/v1/orders/"+o.ID, `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "At least one field must be provided for update", resp.Error)
}

func TestScenarioE_MalformedID(t *testing.T) {
	h := newTestRouter(t, nil)

	rec, resp := do(t, h, http.MethodGet, "/api/v1/orders/not-a-uuid", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid UUID format", resp.Error)
}

func TestScenarioF_DeleteTwice(t *testing.T) {
	h := newTestRouter(t, nil)
	o := createOrder(t, h, `{"customer_name":"Ana","item":"Widget","quantity":3}`)

	rec, _ := do(t, h, http.MethodDelete, "/api/v1/orders/"+o.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp := do(t, h, http.MethodDelete, "/api/v1/orders/"+o.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order with ID "+o.ID+" not found", resp.Error)
}

func TestRoundTripAndLifecycle(t *testing.T) {
	h := newTestRouter(t, nil)
	created := createOrder(t, h, `{"customer_name":"Bo","item":"Lamp","quantity":2,"status":"pending"}`)

	rec, resp := do(t, h, http.MethodGet, "/api/v1/orders/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched orderData
	require.NoError(t, json.Unmarshal(resp.Data, &fetched))
	assert.Equal(t, created, fetched)

	rec, resp = do(t, h, http.MethodPut, "/api/v1/orders/"+created.ID, `{"quantity":10001}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Quantity must be between 1 and 10,000", resp.Error)

	rec, _ = do(t, h, http.MethodPost, "/api/v1/orders/"+created.ID+"/complete", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = do(t, h, http.MethodPut, "/api/v1/orders/"+created.ID, `{"status":"pending"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot change status of a completed order", resp.Error)

	rec, resp = do(t, h, http.MethodPost, "/api/v1/orders/"+created.ID+"/cancel", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot cancel a completed order", resp.Error)

	rec, resp = do(t, h, http.MethodPut, "/api/v1/orders/"+created.ID, `{"item":"Desk lamp"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	var updated orderData
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, "Desk lamp", updated.Item)
	assert.Equal(t, "completed", updated.Status)
	assert.NotEmpty(t, updated.UpdatedAt)
}

func TestListPaginationAcrossPages(t *testing.T) {
	h := newTestRouter(t, nil)
	for i := 0; i < 3; i++ {
		createOrder(t, h, `{"customer_name":"Cy","item":"Cup","quantity":1}`)
	}

	_, resp := do(t, h, http.MethodGet, "/api/v1/orders?page=2&page_size=2", "")
	var list listData
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Len(t, list.Data, 1)
	assert.Equal(t, 3, list.Pagination.TotalItems)
	assert.Equal(t, 2, list.Pagination.TotalPages)
	assert.False(t, list.Pagination.HasNext)
	assert.True(t, list.Pagination.HasPrev)

	rec, resp := do(t, h, http.MethodGet, "/api/v1/orders?page=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Page must be greater than 0", resp.Error)
}

func TestHealthAndInfoRoutes(t *testing.T) {
	h := newTestRouter(t, nil)

	rec, resp := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Order Management API is running", resp.Message)
	assert.Contains(t, string(resp.Data), `"version":"test"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec, resp = do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	rec, resp = do(t, h, http.MethodGet, "/api/v1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Order Management API v1", resp.Message)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	h := newTestRouter(t, nil)

	rec, resp := do(t, h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route /nope not found", resp.Message)

	rec, resp = do(t, h, http.MethodPatch, "/api/v1/orders", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.False(t, resp.Success)
}

func TestContentTypeEnforced(t *testing.T) {
	h := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"customer_name":"Ana"}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid Content-Type", resp.Message)
	assert.Equal(t, "Content-Type must be application/json", resp.Error)

	rec, resp = do(t, h, http.MethodPost, "/api/v1/orders", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid Content-Type", resp.Message)
}

func TestMalformedJSON(t *testing.T) {
	h := newTestRouter(t, nil)

	rec, resp := do(t, h, http.MethodPost, "/api/v1/orders", `{"customer_name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON format", resp.Message)
	assert.Equal(t, "Request body must be valid JSON", resp.Error)
}

func TestTrailingDataRejected(t *testing.T) {
	h := newTestRouter(t, nil)

	for _, body := range []string{
		`{"customer_name":"Ana","item":"Widget","quantity":3} this is not json`,
		`{"customer_name":"Ana","item":"Widget","quantity":3}{"x":1}`,
	} {
		rec, resp := do(t, h, http.MethodPost, "/api/v1/orders", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "Invalid JSON format", resp.Message)
		assert.Equal(t, "Request body must be valid JSON", resp.Error)
	}

	_, resp := do(t, h, http.MethodGet, "/api/v1/orders", "")
	var list listData
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, 0, list.Pagination.TotalItems)
}

func TestBodyTooLarge(t *testing.T) {
	h := newTestRouter(t, nil)
	body := `{"customer_name":"` + strings.Repeat("a", 2<<10) + `","item":"Widget","quantity":1}`

	rec, resp := do(t, h, http.MethodPost, "/api/v1/orders", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "Request body too large", resp.Message)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/orders", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

type fixedLimiter struct{ allowed bool }

func (l fixedLimiter) Allow(ctx context.Context, key string) (ratelimit.Result, error) {
	return ratelimit.Result{Allowed: l.allowed, Limit: 100}, nil
}

func TestRateLimitAppliesOnlyToAPI(t *testing.T) {
	h := newTestRouter(t, fixedLimiter{allowed: false})

	rec, resp := do(t, h, http.MethodGet, "/api/v1/orders", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too many requests from this IP, please try again later.", resp.Message)

	rec, _ = do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

type panickingRoutes struct{}

func (panickingRoutes) RegisterRoutes(r chi.Router) {
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
}

func TestPanicRecovered(t *testing.T) {
	logger := zap.NewNop()
	rs := respond.New(logger, false)
	h := NewRouter(RouterDeps{
		Config:    testConfig(),
		Orders:    panickingRoutes{},
		Responder: rs,
		Logger:    logger,
	})

	rec, resp := do(t, h, http.MethodGet, "/api/v1/boom", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", resp.Message)
	assert.Empty(t, resp.Error)
}
