package httptransport

import (
	"expvar"
	"net/http"
	"sort"

	"keel-relay/internal/relay"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func NewRouter(svc *relay.Service, logger zerolog.Logger) *chi.Mux {
	keelHandlers := NewKeelHandlers(svc, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.Route("/webhooks", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.With(RequestBodyCaptureMiddleware(4096)).Post("/keel", keelHandlers.Notify())
	})
	return r
}

// NewMetricsRouter serves expvar counters on a separate listener.
func NewMetricsRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get("/debug/vars", expvar.Handler().ServeHTTP)
	return r
}

func LogRoutes(r chi.Router, logger zerolog.Logger) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 4)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	for _, rt := range routes {
		logger.Debug().Str("method", rt.Method).Str("path", rt.Path).Msg("route registered")
	}
}
