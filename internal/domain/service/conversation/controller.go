package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/pkg/logx"
)

type DealsService interface {
	All(ctx context.Context, creds entity.Credentials) ([]entity.Deal, error)
	Profitable(ctx context.Context, creds entity.Credentials) ([]entity.Deal, error)
	Search(ctx context.Context, creds entity.Credentials, term string) ([]entity.Deal, error)
}

type BFMRClient interface {
	VerifyCredentials(ctx context.Context, creds entity.Credentials) error
	Reserve(ctx context.Context, creds entity.Credentials, reservation entity.Reservation) (entity.ReservationResult, error)
}

type SessionStore interface {
	Credentials(ctx context.Context, userID int64) (entity.Credentials, bool, error)
	SaveCredentials(ctx context.Context, userID int64, creds entity.Credentials) error

	Pending(ctx context.Context, userID int64) (entity.PendingCommitment, bool, error)
	SetPending(ctx context.Context, userID int64, pending entity.PendingCommitment) error
	ClearPending(ctx context.Context, userID int64) error
	TakePending(ctx context.Context, userID int64) (entity.PendingCommitment, bool, error)

	BrowseState(ctx context.Context, userID int64) (entity.BrowseState, bool, error)
	SetBrowseState(ctx context.Context, userID int64, state entity.BrowseState) error

	SetupDraft(ctx context.Context, userID int64) (entity.SetupDraft, bool, error)
	SetSetupDraft(ctx context.Context, userID int64, draft entity.SetupDraft) error
	ClearSetupDraft(ctx context.Context, userID int64) error
}

// Controller ведёт диалоги настройки ключей и выбора сделки. Состояние
// хранится только в SessionStore, поэтому обновления разных пользователей
// обрабатываются независимо.
//
// Ошибки, понятные пользователю, отправляются сообщением и не возвращаются.
// Возвращаются только сбои хранилища и доставки.
type Controller struct {
	deals     DealsService
	client    BFMRClient
	store     SessionStore
	responder Responder
	promoURL  string
	now       func() time.Time
}

func NewController(
	deals DealsService,
	client BFMRClient,
	store SessionStore,
	responder Responder,
) *Controller {
	return &Controller{
		deals:     deals,
		client:    client,
		store:     store,
		responder: responder,
		promoURL:  DefaultPromoURL,
		now:       time.Now,
	}
}

func (c *Controller) WithPromoURL(promoURL string) *Controller {
	if promoURL != "" {
		c.promoURL = promoURL
	}

	return c
}

func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

func (c *Controller) Start(ctx context.Context, in Input) error {
	_, configured, err := c.store.Credentials(ctx, in.UserID)
	if err != nil {
		return fmt.Errorf("store.Credentials: %w", err)
	}

	return c.send(ctx, in.ChatID, StartScreen(configured, c.promoURL))
}

func (c *Controller) Help(ctx context.Context, in Input) error {
	return c.send(ctx, in.ChatID, HelpScreen(c.promoURL))
}

// Text обрабатывает обычный текст: сначала как шаг /setup, затем как
// количество для выбранной позиции. Остальной текст игнорируется.
func (c *Controller) Text(ctx context.Context, in Input, text string) error {
	draft, ok, err := c.store.SetupDraft(ctx, in.UserID)
	if err != nil {
		return fmt.Errorf("store.SetupDraft: %w", err)
	}

	if ok && draft.State.Active() {
		return c.setupInput(ctx, in, draft, text)
	}

	_, ok, err = c.store.Pending(ctx, in.UserID)
	if err != nil {
		return fmt.Errorf("store.Pending: %w", err)
	}

	if ok {
		return c.quantity(ctx, in, text)
	}

	logger(ctx).Debug("text ignored", slog.Int64(logx.FieldUserID, in.UserID))

	return nil
}

// credentials возвращает ключи пользователя или просит пройти /setup.
func (c *Controller) credentials(ctx context.Context, in Input) (entity.Credentials, bool, error) {
	creds, ok, err := c.store.Credentials(ctx, in.UserID)
	if err != nil {
		return entity.Credentials{}, false, fmt.Errorf("store.Credentials: %w", err)
	}

	if !ok {
		return entity.Credentials{}, false, c.send(ctx, in.ChatID, textMessage(textConfigureFirst))
	}

	return creds, true, nil
}

func (c *Controller) send(ctx context.Context, chatID int64, msg Message) error {
	if _, err := c.responder.Send(ctx, chatID, msg); err != nil {
		return fmt.Errorf("responder.Send: %w", err)
	}

	return nil
}

func (c *Controller) edit(ctx context.Context, ref MessageRef, msg Message) error {
	if err := c.responder.Edit(ctx, ref, msg); err != nil {
		return fmt.Errorf("responder.Edit: %w", err)
	}

	return nil
}

// deleteMessage не прерывает диалог: сообщение могло быть уже удалено.
func (c *Controller) deleteMessage(ctx context.Context, ref MessageRef) {
	if err := c.responder.Delete(ctx, ref); err != nil {
		logger(ctx).Warn("failed to delete message",
			slog.Int64(logx.FieldChatID, ref.ChatID),
			slog.Int(logx.FieldMessageID, ref.MessageID),
			logx.Error(err),
		)
	}
}
