package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/finsight-pos/finsight-pos/internal/auth"
	"github.com/finsight-pos/finsight-pos/internal/catalog/categories"
	"github.com/finsight-pos/finsight-pos/internal/catalog/products"
	"github.com/finsight-pos/finsight-pos/internal/dashboard"
	"github.com/finsight-pos/finsight-pos/internal/observability"
	"github.com/finsight-pos/finsight-pos/internal/restock"
	"github.com/finsight-pos/finsight-pos/internal/sales"
	"github.com/finsight-pos/finsight-pos/internal/settings"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	AuthHandler       *auth.Handler
	AuthMiddleware    *auth.Middleware
	ProductsHandler   *products.Handler
	CategoriesHandler *categories.Handler
	RestockHandler    *restock.Handler
	SalesHandler      *sales.Handler
	DashboardHandler  *dashboard.Handler
	SettingsHandler   *settings.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with FinSight defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/login", params.AuthHandler.Login)

	// Everything past this point requires a bearer token.
	r.Group(func(r chi.Router) {
		r.Use(params.AuthMiddleware.RequireAuth)

		r.Post("/logout", params.AuthHandler.Logout)
		r.Get("/user", params.AuthHandler.Profile)

		r.Route("/products", params.ProductsHandler.MountRoutes)
		r.Route("/categories", params.CategoriesHandler.MountRoutes)
		r.Route("/restock-history", params.RestockHandler.MountRoutes)
		r.Route("/transactions", params.SalesHandler.MountRoutes)
		r.Route("/dashboard", params.DashboardHandler.MountRoutes)
		r.Route("/settings", params.SettingsHandler.MountRoutes)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
