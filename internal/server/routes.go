package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vend_kiosk/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Route("/kiosk", func(r chi.Router) {
			r.Get("/", handler(s.getV1Kiosk))
			r.Post("/catalog/refresh", handler(s.postV1CatalogRefresh))
			r.Post("/balance", handler(s.postV1Balance))
			r.Put("/selection", handler(s.putV1Selection))
			r.Post("/purchase", handler(s.postV1Purchase))
		})

		if s.receipts != nil {
			r.Get("/receipts", handler(s.receipts.getV1Receipts))
			r.Get("/sales/{date}", handler(s.receipts.getV1SalesDay))
		}
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
