package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"card_market/pkg/httpx/reply"
	"card_market/pkg/logx"
	"card_market/pkg/middlewarex"
)

// Handler wraps the routes into the middleware stack used in production.
func (s Server) Handler(masker logx.SensitiveDataMaskerInterface, logFieldMaxLen int) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Metrics,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
	)

	s.RegisterRoutes(r)

	return r
}

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/games", func(r chi.Router) {
				r.Get("/top", handler(s.getV1GamesTop))
				r.Post("/refresh", handler(s.postV1GamesRefresh))
				r.Get("/{appid}", handler(s.getV1Game))
			})
			r.Get("/cards/{hashName}/history", handler(s.getV1CardHistory))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
