package app

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/shopvima/shopvima/internal/auth"
	"github.com/shopvima/shopvima/internal/catalog"
	"github.com/shopvima/shopvima/internal/observability"
	"github.com/shopvima/shopvima/internal/rbac"
	"github.com/shopvima/shopvima/internal/shared"
	"github.com/shopvima/shopvima/internal/users"
	"github.com/shopvima/shopvima/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Gate           rbac.Gate
	AuthHandler    *auth.Handler
	UsersHandler   *users.Handler
	RBACHandler    *rbac.Handler
	CatalogHandler *catalog.Handler
	JobsHandler    *jobs.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with ShopVima defaults. Everything
// under the API prefix passes through the route-derived permission gate.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	prefix := "/api"
	if params.Config != nil && params.Config.APIPrefix != "" {
		prefix = params.Config.APIPrefix
	}

	r.Route(prefix, func(r chi.Router) {
		r.Use(params.Gate.Middleware)

		r.Route("/auth", params.AuthHandler.MountRoutes)
		if params.UsersHandler != nil {
			r.Route("/users", params.UsersHandler.MountRoutes)
		}
		if params.RBACHandler != nil {
			params.RBACHandler.MountRoutes(r)
		}
		if params.CatalogHandler != nil {
			r.Route("/products", params.CatalogHandler.MountProducts)
			r.Route("/brands", params.CatalogHandler.MountBrands)
			r.Route("/categories", params.CatalogHandler.MountCategories)
		}
		if params.JobsHandler != nil {
			r.Route("/jobs", params.JobsHandler.MountRoutes)
			r.With(params.Gate.RequireAny(shared.PermProductsImport)).
				Post("/imports/woocommerce", params.JobsHandler.EnqueueImport)
		}
	})

	return r
}
