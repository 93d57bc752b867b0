// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Bochorn0/aquatech-api-sub001/api/middleware"
	"github.com/Bochorn0/aquatech-api-sub001/api/resources"
	"github.com/Bochorn0/aquatech-api-sub001/internal/fleetservice"
)

type Router struct {
	router    *mux.Router
	auth      *middleware.KeycloakMiddleware
	resources *resources.Resources
}

func NewRouter(svc *fleetservice.FleetService, keycloakConfig middleware.KeycloakConfig) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		auth:      middleware.NewKeycloakMiddleware(keycloakConfig),
		resources: resources.NewResources(svc),
	}

	r.setupRoutes()
	return r
}

// Resources exposes the handler set so the server can attach health and
// metrics endpoints.
func (r *Router) Resources() *resources.Resources {
	return r.resources
}

// UseRequestMetrics installs per-request counting on every matched route.
// The observer receives the route template so path values like ids do not
// explode metric cardinality.
func (r *Router) UseRequestMetrics(observe func(method, path string, status int)) {
	r.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, req)
			path := req.URL.Path
			if route := mux.CurrentRoute(req); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					path = tpl
				}
			}
			observe(req.Method, path, rec.status)
		})
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *Router) setupRoutes() {
	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if r.resources.HealthCheck != nil {
			r.resources.HealthCheck(w, req)
		}
	}).Methods(http.MethodGet)
	api.HandleFunc("/metrics", func(w http.ResponseWriter, req *http.Request) {
		if r.resources.Metrics != nil {
			r.resources.Metrics(w, req)
		}
	}).Methods(http.MethodGet)

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.auth.Authenticate)

	// Reports
	reports := protected.PathPrefix("/reports").Subrouter()
	reports.HandleFunc("/product-logs", r.resources.Reports.ProductLogs).Methods(http.MethodGet)
	reports.HandleFunc("/mensual", r.resources.Reports.Daily).Methods(http.MethodGet)
	reports.HandleFunc("/timeseries", r.resources.Reports.TimeSeries).Methods(http.MethodGet)

	// Products
	products := protected.PathPrefix("/products").Subrouter()
	products.HandleFunc("", r.resources.Products.ListProducts).Methods(http.MethodGet)
	products.HandleFunc("", r.resources.Products.CreateProduct).Methods(http.MethodPost)
	products.HandleFunc("/{id}", r.resources.Products.GetProduct).Methods(http.MethodGet)
	products.HandleFunc("/{id}", r.resources.Products.UpdateProduct).Methods(http.MethodPut)
	products.HandleFunc("/{id}", r.resources.Products.DeleteProduct).Methods(http.MethodDelete)
	products.HandleFunc("/{id}/status", r.resources.Products.GetProductStatus).Methods(http.MethodGet)

	// Telemetry ingestion
	protected.HandleFunc("/logs", r.resources.Logs.IngestLogs).Methods(http.MethodPost)

	// Puntos de venta
	puntos := protected.PathPrefix("/puntos-venta").Subrouter()
	puntos.HandleFunc("", r.resources.PuntosVenta.ListPuntosVenta).Methods(http.MethodGet)
	puntos.HandleFunc("", r.resources.PuntosVenta.CreatePuntoVenta).Methods(http.MethodPost)
	puntos.HandleFunc("/{id}", r.resources.PuntosVenta.GetPuntoVenta).Methods(http.MethodGet)
	puntos.HandleFunc("/{id}", r.resources.PuntosVenta.UpdatePuntoVenta).Methods(http.MethodPut)
	puntos.HandleFunc("/{id}", r.resources.PuntosVenta.DeletePuntoVenta).Methods(http.MethodDelete)
	puntos.HandleFunc("/{id}/products", r.resources.PuntosVenta.ListPuntoVentaProducts).Methods(http.MethodGet)

	// Clients
	clients := protected.PathPrefix("/clients").Subrouter()
	clients.HandleFunc("", r.resources.Clients.ListClients).Methods(http.MethodGet)
	clients.HandleFunc("", r.resources.Clients.CreateClient).Methods(http.MethodPost)
	clients.HandleFunc("/{id}", r.resources.Clients.GetClient).Methods(http.MethodGet)
	clients.HandleFunc("/{id}", r.resources.Clients.UpdateClient).Methods(http.MethodPut)
	clients.HandleFunc("/{id}", r.resources.Clients.DeleteClient).Methods(http.MethodDelete)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
