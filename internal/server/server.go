package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bfmr_bot/pkg/middlewarex"
)

// Server объединяет HTTP-обработчики бота. Сейчас это только приём вебхуков
// Telegram, probe и метрики поднимаются отдельными серверами.
type Server struct {
	*WebhookServer
}

func NewServer(
	webhookServer *WebhookServer,
) Server {
	return Server{
		WebhookServer: webhookServer,
	}
}

// Handler — роутер со стандартной цепочкой middleware.
func (s Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middlewarex.TraceID, middlewarex.Logger, middlewarex.AccessLog, middlewarex.Recovery)

	s.RegisterRoutes(r)

	return r
}
