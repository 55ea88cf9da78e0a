package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bfmr_bot/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Post(s.WebhookServer.path, handler(s.postWebhook))
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
