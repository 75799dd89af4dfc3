package router

import (
	"net/http"

	"dinehub/internal/handler"
	"dinehub/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
// Menu mutations sit behind the optional admin API-key guard; customer
// endpoints (menu reads, order submission and tracking) are open.
func New(
	menuHandler *handler.MenuHandler,
	orderHandler *handler.OrderHandler,
	analyticsHandler *handler.AnalyticsHandler,
	adminAPIKey string,
	logger zerolog.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check endpoint (no middleware concerns beyond logging)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	}).Methods(http.MethodGet)

	admin := middleware.AdminKeyAuth(adminAPIKey, logger)
	guard := func(h http.HandlerFunc) http.Handler {
		return admin(h)
	}

	api := r.PathPrefix("/api").Subrouter()

	// Menu catalogue
	api.HandleFunc("/menu", menuHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/menu/search", menuHandler.Search).Methods(http.MethodGet)
	api.Handle("/menu", guard(menuHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/menu/{id}", menuHandler.GetByID).Methods(http.MethodGet)
	api.Handle("/menu/{id}", guard(menuHandler.Update)).Methods(http.MethodPut)
	api.Handle("/menu/{id}", guard(menuHandler.Delete)).Methods(http.MethodDelete)
	api.Handle("/menu/{id}/availability", guard(menuHandler.ToggleAvailability)).Methods(http.MethodPatch)

	// Orders. The analytics route is registered before the {id} route,
	// matching the upstream route table ordering.
	api.HandleFunc("/orders", orderHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/orders/analytics/top-sellers", analyticsHandler.TopSellers).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", orderHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/orders", orderHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/status", orderHandler.UpdateStatus).Methods(http.MethodPatch)

	// Apply middleware in order: Recovery -> Logging -> CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Content-Type", "X-API-Key"},
	})

	var h http.Handler = r
	h = corsHandler.Handler(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
