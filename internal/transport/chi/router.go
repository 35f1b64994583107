package chi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kailas-cloud/faqsearch/internal/metrics"
)

// RouterConfig holds router-level options.
type RouterConfig struct {
	// AdminAPIKeys protect /admin routes. Empty disables authentication.
	AdminAPIKeys []string
}

var routeMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// NewRouter wires the middleware stack and routes.
func NewRouter(s *Server, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(Recoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEvent(s.logger))
	r.Use(metrics.Middleware())

	r.NotFound(s.notFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Allow", strings.Join(allowedMethods(r, req.URL.Path), ", "))
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", s.Health)
	r.Get("/metrics", s.Metrics)
	r.Post("/api/search", s.Search)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuthMiddleware(cfg.AdminAPIKeys))
		r.Post("/admin/reload", s.Reload)
	})

	return r
}

// allowedMethods lists the methods registered for path.
func allowedMethods(routes chi.Routes, path string) []string {
	var out []string
	for _, m := range routeMethods {
		if routes.Match(chi.NewRouteContext(), m, path) {
			out = append(out, m)
		}
	}
	return out
}
