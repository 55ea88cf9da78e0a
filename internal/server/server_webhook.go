package server

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"git.appkode.ru/pub/go/failure"
	"github.com/mymmrac/telego"

	"bfmr_bot/pkg/errcodes"
	"bfmr_bot/pkg/httpx/reply"
)

// Апдейт Telegram с запасом помещается в мегабайт.
const maxUpdateSize = 1 << 20

var ErrHandlerRegistered = errors.New("webhook handler already registered")

// WebhookServer принимает апдейты Telegram и передаёт их telego.
// Запросы без правильного X-Telegram-Bot-Api-Secret-Token отклоняются.
type WebhookServer struct {
	path   string
	secret string

	mu      sync.RWMutex
	handler telego.WebhookHandler
}

func NewWebhookServer(path, secret string) *WebhookServer {
	return &WebhookServer{
		path:   path,
		secret: secret,
	}
}

// Register подходит для telego.Bot.UpdatesViaWebhook.
func (s *WebhookServer) Register(handler telego.WebhookHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handler != nil {
		return ErrHandlerRegistered
	}

	s.handler = handler

	return nil
}

func (s *WebhookServer) postWebhook(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	token := r.Header.Get(telego.WebhookSecretTokenHeader)
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.secret)) != 1 {
		return failure.NewUnauthorizedError("invalid webhook secret token", failure.WithCode(errcodes.Unauthorized))
	}

	s.mu.RLock()
	handle := s.handler
	s.mu.RUnlock()

	if handle == nil {
		return failure.NewInternalServerError("webhook handler is not registered",
			failure.WithCode(errcodes.InternalServerError))
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUpdateSize))
	if err != nil {
		return failure.NewInvalidArgumentError(fmt.Sprintf("read body: %v", err),
			failure.WithCode(errcodes.ValidationError))
	}

	if err := handle(ctx, body); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("handle: %w", err)
		}

		return failure.NewInvalidArgumentError(err.Error(), failure.WithCode(errcodes.ValidationError))
	}

	reply.OK(w)

	return nil
}
