package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/talx-hub/gopher-graph/internal/config"
	"github.com/talx-hub/gopher-graph/internal/utils/logger"
)

type CustomRouter struct {
	router *chi.Mux
	logger *slog.Logger
	cfg    *config.Config
}

func New(cfg *config.Config, log *slog.Logger) *CustomRouter {
	router := &CustomRouter{
		router: chi.NewRouter(),
		logger: log,
		cfg:    cfg,
	}

	return router
}

type HealthHandler interface {
	Ping(w http.ResponseWriter, r *http.Request)
}

// SetRouter mounts the GraphQL endpoint and the health check. The
// graphql handler serves POST queries and upgrades GET requests to a
// WebSocket for subscriptions, so it is registered for all methods.
func (cr *CustomRouter) SetRouter(graphql http.Handler, h HealthHandler) {
	cr.router.Use(middleware.Recoverer)
	cr.router.Use(cr.withLogger)

	cr.router.Handle("/graphql", graphql)
	cr.router.Get("/ping", h.Ping)

	cr.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w,
			http.StatusText(http.StatusMethodNotAllowed),
			http.StatusMethodNotAllowed)
	})
}

func (cr *CustomRouter) GetRouter() *chi.Mux {
	return cr.router
}

func (cr *CustomRouter) withLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithContext(r.Context(), cr.logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
