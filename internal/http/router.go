package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"promptforge/internal/enhancer"
	"promptforge/internal/handlers"
	"promptforge/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Enhancer    enhancer.Service
	Cache       *enhancer.Cache
	Collections *storage.CollectionRepo
	Prompts     *storage.SavedPromptRepo
	DB          *sql.DB
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)

	// The UI runs in a browser extension context, so allow any origin on
	// this localhost-only API.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         3600,
	}))

	enhanceHandler := handlers.NewEnhanceHandler(deps.Enhancer)
	collectionsHandler := handlers.NewCollectionsHandler(deps.Collections, deps.Prompts)
	promptsHandler := handlers.NewPromptsHandler(deps.Prompts)
	previewHandler := handlers.NewPreviewHandler(deps.Prompts)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Cache)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/enhance", enhanceHandler)
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Route("/collections", func(r chi.Router) {
			r.Get("/", collectionsHandler.List)
			r.Post("/", collectionsHandler.Create)
			r.Post("/default", collectionsHandler.Default)
			r.Get("/{id}", collectionsHandler.Get)
			r.Put("/{id}", collectionsHandler.Update)
			r.Delete("/{id}", collectionsHandler.Delete)
			r.Get("/{id}/prompts", collectionsHandler.Prompts)
		})

		r.Route("/prompts", func(r chi.Router) {
			r.Get("/", promptsHandler.List)
			r.Post("/", promptsHandler.Save)
			r.Post("/bulk-delete", promptsHandler.BulkDelete)
			r.Post("/bulk-move", promptsHandler.BulkMove)
			r.Get("/{id}", promptsHandler.Get)
			r.Put("/{id}", promptsHandler.Update)
			r.Delete("/{id}", promptsHandler.Delete)
			r.Post("/{id}/move", promptsHandler.Move)
			r.Method(http.MethodGet, "/{id}/preview", previewHandler)
		})
	})

	return r
}
