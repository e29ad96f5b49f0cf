package api

import (
	"database/sql"
	"net/http"

	"github.com/rs/cors"
)

// NewRouter creates the table service router with all endpoints registered.
func NewRouter(db *sql.DB, keySecret string) http.Handler {
	mux := http.NewServeMux()

	inventoryHandler := &InventoryHandler{DB: db}
	keyMW := KeyMiddleware(keySecret)

	mux.HandleFunc("GET /api/health", Health)

	mux.Handle("GET /api/inventory", keyMW(http.HandlerFunc(inventoryHandler.List)))
	mux.Handle("POST /api/inventory", keyMW(http.HandlerFunc(inventoryHandler.Create)))
	mux.Handle("GET /api/inventory/{id}", keyMW(http.HandlerFunc(inventoryHandler.Get)))
	mux.Handle("PATCH /api/inventory/{id}", keyMW(http.HandlerFunc(inventoryHandler.Update)))
	mux.Handle("DELETE /api/inventory/{id}", keyMW(http.HandlerFunc(inventoryHandler.Delete)))

	return mux
}

// WithCORS allows browser front-ends on other origins to reach the table.
// An empty origin list allows every origin.
func WithCORS(next http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type", "apikey"},
		MaxAge:         600,
	})
	return c.Handler(next)
}

// Health handles GET /api/health.
func Health(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
