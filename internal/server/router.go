package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"ordermgmt/internal/config"
	"ordermgmt/internal/ratelimit"
	"ordermgmt/internal/respond"
)

type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

type RouterDeps struct {
	Config    *config.Config
	Version   string
	Orders    RouteRegistrar
	Responder *respond.Responder
	Logger    *zap.Logger
	// Limiter is optional; a nil Limiter disables rate limiting.
	Limiter ratelimit.Limiter
}

func NewRouter(deps RouterDeps) http.Handler {
	cfg := deps.Config
	rs := deps.Responder
	apiBase := "/api/" + cfg.App.APIVersion

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(deps.Logger))
	r.Use(Recoverer(rs, deps.Logger))
	r.Use(SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestSize(cfg.Server.BodyLimitBytes))
	r.Use(respond.CaptureBody)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rs.Reject(w, http.StatusNotFound, fmt.Sprintf("Route %s not found", r.URL.RequestURI()), "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rs.Reject(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s not allowed for %s", r.Method, r.URL.Path), "")
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		rs.Success(w, http.StatusOK, "Welcome to Order Management System API", map[string]any{
			"endpoints": map[string]string{
				"health":   "/health",
				"api_base": apiBase,
				"orders":   apiBase + "/orders",
			},
			"status": "Server is running successfully",
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		rs.Success(w, http.StatusOK, "Order Management API is running", map[string]string{
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
			"version":   deps.Version,
		})
	})

	r.Route(apiBase, func(r chi.Router) {
		if deps.Limiter != nil {
			r.Use(ratelimit.Middleware(deps.Limiter, rs, deps.Logger))
		}
		r.Use(RequireJSON(rs, "/complete", "/cancel"))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			rs.Success(w, http.StatusOK, "Order Management API "+cfg.App.APIVersion, map[string]any{
				"endpoints": map[string]string{
					"GET /orders":                "Get paginated orders list",
					"GET /orders/{id}":           "Get order by ID",
					"POST /orders":               "Create new order",
					"PUT /orders/{id}":           "Update order",
					"DELETE /orders/{id}":        "Delete order",
					"POST /orders/{id}/complete": "Mark order as completed",
					"POST /orders/{id}/cancel":   "Cancel order",
				},
			})
		})

		deps.Orders.RegisterRoutes(r)
	})

	return r
}
