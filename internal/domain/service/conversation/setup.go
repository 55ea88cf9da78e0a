package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"bfmr_bot/internal/domain"
	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/internal/domain/value"
	"bfmr_bot/pkg/errcodes"
	"bfmr_bot/pkg/logx"
)

const textSetupInProgress = "⏳ Your credentials are being verified, please wait..."

// Setup начинает (или перезапускает) диалог настройки ключей.
func (c *Controller) Setup(ctx context.Context, in Input) error {
	draft, ok, err := c.store.SetupDraft(ctx, in.UserID)
	if err != nil {
		return fmt.Errorf("store.SetupDraft: %w", err)
	}

	state := value.SetupIdle
	if ok {
		state = draft.State
	}

	next, err := Transition(SetupTransitions, state, EventSetup)
	if err != nil {
		logger(ctx).Info("setup restart rejected", slog.String(logx.FieldState, state.String()), logx.Error(err))
		return c.send(ctx, in.ChatID, textMessage(textSetupInProgress))
	}

	if err := c.store.SetSetupDraft(ctx, in.UserID, entity.SetupDraft{State: next}); err != nil {
		return fmt.Errorf("store.SetSetupDraft: %w", err)
	}

	return c.send(ctx, in.ChatID, Message{Text: textSetupKeyPrompt, ForceReply: true})
}

// Cancel прерывает /setup и сбрасывает выбранную позицию.
func (c *Controller) Cancel(ctx context.Context, in Input) error {
	draft, hasDraft, err := c.store.SetupDraft(ctx, in.UserID)
	if err != nil {
		return fmt.Errorf("store.SetupDraft: %w", err)
	}

	_, hasPending, err := c.store.Pending(ctx, in.UserID)
	if err != nil {
		return fmt.Errorf("store.Pending: %w", err)
	}

	setupCancelled := hasDraft && draft.State.Active()

	if setupCancelled {
		if _, err := Transition(SetupTransitions, draft.State, EventCancel); err != nil {
			return fmt.Errorf("Transition: %w", err)
		}

		if err := c.store.ClearSetupDraft(ctx, in.UserID); err != nil {
			return fmt.Errorf("store.ClearSetupDraft: %w", err)
		}
	}

	if hasPending {
		if _, err := Transition(BrowseTransitions, value.BrowseItemSelected, EventCancel); err != nil {
			return fmt.Errorf("Transition: %w", err)
		}

		if err := c.store.ClearPending(ctx, in.UserID); err != nil {
			return fmt.Errorf("store.ClearPending: %w", err)
		}
	}

	switch {
	case setupCancelled:
		return c.send(ctx, in.ChatID, textMessage(textSetupCancelled))
	case hasPending:
		return c.send(ctx, in.ChatID, textMessage(textCommitCancelled))
	default:
		return c.send(ctx, in.ChatID, textMessage(textNothingToCancel))
	}
}

func (c *Controller) setupInput(ctx context.Context, in Input, draft entity.SetupDraft, text string) error {
	text = strings.TrimSpace(text)

	switch draft.State {
	case value.SetupAwaitingKey:
		// ключи не должны оставаться в истории чата
		c.deleteMessage(ctx, in.Ref())

		if text == "" {
			return c.send(ctx, in.ChatID, Message{Text: textSetupKeyPrompt, ForceReply: true})
		}

		next, err := Transition(SetupTransitions, draft.State, EventKeyReceived)
		if err != nil {
			return fmt.Errorf("Transition: %w", err)
		}

		if err := c.store.SetSetupDraft(ctx, in.UserID, entity.SetupDraft{State: next, APIKey: text}); err != nil {
			return fmt.Errorf("store.SetSetupDraft: %w", err)
		}

		return c.send(ctx, in.ChatID, Message{Text: textSetupSecretPrompt, ForceReply: true})
	case value.SetupAwaitingSecret:
		c.deleteMessage(ctx, in.Ref())

		if text == "" {
			return c.send(ctx, in.ChatID, Message{Text: textSetupSecretPrompt, ForceReply: true})
		}

		return c.verify(ctx, in, draft, text)
	default:
		return nil
	}
}

// verify проверяет ключи пробным запросом. Черновик удаляется при любом
// исходе, ключи сохраняются только после успешной проверки.
func (c *Controller) verify(ctx context.Context, in Input, draft entity.SetupDraft, secret string) error {
	state, err := Transition(SetupTransitions, draft.State, EventSecretReceived)
	if err != nil {
		return fmt.Errorf("Transition: %w", err)
	}

	draft.State = state
	if err := c.store.SetSetupDraft(ctx, in.UserID, draft); err != nil {
		return fmt.Errorf("store.SetSetupDraft: %w", err)
	}

	creds := entity.Credentials{
		APIKey:    draft.APIKey,
		APISecret: secret,
		SetupDate: c.now().UTC(),
	}

	verifyErr := c.client.VerifyCredentials(ctx, creds)

	event := EventVerified
	if verifyErr != nil {
		event = EventRejected
	}

	if _, err := Transition(SetupTransitions, state, event); err != nil {
		return fmt.Errorf("Transition: %w", err)
	}

	if err := c.store.ClearSetupDraft(ctx, in.UserID); err != nil {
		return fmt.Errorf("store.ClearSetupDraft: %w", err)
	}

	switch {
	case verifyErr == nil:
		if err := c.store.SaveCredentials(ctx, in.UserID, creds); err != nil {
			return fmt.Errorf("store.SaveCredentials: %w", err)
		}

		logger(ctx).Info("credentials saved", slog.Int64(logx.FieldUserID, in.UserID))

		return c.send(ctx, in.ChatID, textMessage(textSetupSuccess))
	case domain.HasCode(verifyErr, errcodes.CredentialsInvalid):
		logger(ctx).Info("credentials rejected", slog.Int64(logx.FieldUserID, in.UserID))

		return c.send(ctx, in.ChatID, textMessage(textSetupInvalid))
	default:
		logger(ctx).Warn("credentials verification failed",
			slog.Int64(logx.FieldUserID, in.UserID),
			logx.Error(verifyErr),
		)

		return c.send(ctx, in.ChatID, textMessage(fmt.Sprintf(textSetupFailed, verifyErrorText(verifyErr))))
	}
}
