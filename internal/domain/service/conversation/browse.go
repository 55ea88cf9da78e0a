package conversation

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"

	"git.appkode.ru/pub/go/failure"

	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/internal/domain/value"
	"bfmr_bot/pkg/errcodes"
	"bfmr_bot/pkg/logx"
)

type fetchFunc func(ctx context.Context, creds entity.Credentials) ([]entity.Deal, error)

// listing — плоский вывод: статус, затем по карточке на сделку.
type listing struct {
	status string
	empty  string
	found  func(n int) string
	fetch  fetchFunc
}

// Browse (/deals) загружает сделки и показывает первую с навигацией.
func (c *Controller) Browse(ctx context.Context, in Input) error {
	creds, ok, err := c.credentials(ctx, in)
	if err != nil || !ok {
		return err
	}

	status, err := c.responder.Send(ctx, in.ChatID, textMessage(textFetchingDeals))
	if err != nil {
		return fmt.Errorf("responder.Send: %w", err)
	}

	deals, err := c.deals.All(ctx, creds)
	if err != nil {
		logger(ctx).Error("failed to fetch deals", logx.Error(err))
		return c.edit(ctx, status, textMessage(fetchErrorText(err)))
	}

	if len(deals) == 0 {
		return c.edit(ctx, status, textMessage(textNoDeals))
	}

	state := entity.BrowseState{Deals: deals}
	if err := c.store.SetBrowseState(ctx, in.UserID, state); err != nil {
		return fmt.Errorf("store.SetBrowseState: %w", err)
	}

	c.deleteMessage(ctx, status)

	return c.send(ctx, in.ChatID, c.renderBrowse(ctx, state))
}

// Navigate листает список /deals на step с переходом через края и
// перерисовывает карточку на месте.
func (c *Controller) Navigate(ctx context.Context, in Input, step int) error {
	state, ok, err := c.store.BrowseState(ctx, in.UserID)
	if err != nil {
		return fmt.Errorf("store.BrowseState: %w", err)
	}

	if !ok || state.Empty() {
		return c.send(ctx, in.ChatID, textMessage(textBrowseExpired))
	}

	state = state.Move(step)

	if err := c.store.SetBrowseState(ctx, in.UserID, state); err != nil {
		return fmt.Errorf("store.SetBrowseState: %w", err)
	}

	return c.edit(ctx, in.Ref(), c.renderBrowse(ctx, state))
}

func (c *Controller) ViewAll(ctx context.Context, in Input) error {
	return c.list(ctx, in, listing{
		status: textFetchingAll,
		empty:  textNoDeals,
		found:  func(n int) string { return fmt.Sprintf(textFoundDeals, n) },
		fetch:  c.deals.All,
	})
}

func (c *Controller) Profitable(ctx context.Context, in Input) error {
	return c.list(ctx, in, listing{
		status: textFetchingProfitable,
		empty:  textNoProfitable,
		found:  func(n int) string { return fmt.Sprintf(textFoundProfitable, n) },
		fetch:  c.deals.Profitable,
	})
}

func (c *Controller) Search(ctx context.Context, in Input, term string) error {
	creds, ok, err := c.credentials(ctx, in)
	if err != nil || !ok {
		return err
	}

	term = strings.TrimSpace(term)
	if term == "" {
		return c.send(ctx, in.ChatID, textMessage(textMissingSearchTerm))
	}

	escaped := html.EscapeString(term)

	return c.fetchList(ctx, in, creds, listing{
		status: fmt.Sprintf(textSearching, escaped),
		empty:  fmt.Sprintf(textNoMatches, escaped),
		found:  func(n int) string { return fmt.Sprintf(textFoundMatches, n, escaped) },
		fetch: func(ctx context.Context, creds entity.Credentials) ([]entity.Deal, error) {
			return c.deals.Search(ctx, creds, term)
		},
	})
}

// SelectItem запоминает выбранную позицию и спрашивает количество.
func (c *Controller) SelectItem(ctx context.Context, in Input, data string) error {
	dealID, itemID, err := value.ParseSelectCallback(data)
	if err != nil {
		logger(ctx).Warn("bad select callback", slog.String(logx.FieldCallbackData, data), logx.Error(err))
		return c.send(ctx, in.ChatID, textMessage(textInvalidSelection))
	}

	_, hasPending, err := c.store.Pending(ctx, in.UserID)
	if err != nil {
		return fmt.Errorf("store.Pending: %w", err)
	}

	state := value.BrowseIdle
	if hasPending {
		state = value.BrowseItemSelected
	}

	if _, err := Transition(BrowseTransitions, state, EventItemSelected); err != nil {
		return fmt.Errorf("Transition: %w", err)
	}

	pending := entity.PendingCommitment{DealID: dealID, ItemID: itemID}
	if err := c.store.SetPending(ctx, in.UserID, pending); err != nil {
		return fmt.Errorf("store.SetPending: %w", err)
	}

	logger(ctx).Debug("item selected",
		slog.String(logx.FieldDealID, dealID),
		slog.String(logx.FieldItemID, itemID),
	)

	return c.send(ctx, in.ChatID, Message{Text: textQuantityPrompt, ForceReply: true})
}

// quantity: неверный ввод оставляет позицию выбранной. Перед Reserve
// позиция забирается из хранилища, так что одна позиция резервируется
// не больше одного раза.
func (c *Controller) quantity(ctx context.Context, in Input, text string) error {
	qty, err := ParseQuantity(text)
	if err != nil {
		if _, err := Transition(BrowseTransitions, value.BrowseItemSelected, EventQuantityRejected); err != nil {
			return fmt.Errorf("Transition: %w", err)
		}

		return c.send(ctx, in.ChatID, textMessage(textInvalidQuantity))
	}

	creds, ok, err := c.credentials(ctx, in)
	if err != nil || !ok {
		return err
	}

	pending, ok, err := c.store.TakePending(ctx, in.UserID)
	if err != nil {
		return fmt.Errorf("store.TakePending: %w", err)
	}

	if !ok {
		logger(ctx).Info("pending commitment already taken", slog.Int64(logx.FieldUserID, in.UserID))
		return nil
	}

	_, reserveErr := c.client.Reserve(ctx, creds, entity.Reservation{
		DealID:   pending.DealID,
		ItemID:   pending.ItemID,
		Quantity: qty,
	})

	if _, err := Transition(BrowseTransitions, value.BrowseItemSelected, EventQuantityAccepted); err != nil {
		return fmt.Errorf("Transition: %w", err)
	}

	if reserveErr != nil {
		logger(ctx).Warn("reservation failed",
			slog.String(logx.FieldDealID, pending.DealID),
			slog.String(logx.FieldItemID, pending.ItemID),
			slog.Int(logx.FieldQuantity, qty),
			logx.Error(reserveErr),
		)

		return c.send(ctx, in.ChatID, textMessage(reservationErrorText(reserveErr)))
	}

	return c.send(ctx, in.ChatID, textMessage(fmt.Sprintf(textCommitSuccess, qty)))
}

// ParseQuantity принимает только ASCII-цифры со значением от 1.
func ParseQuantity(text string) (int, error) {
	text = strings.TrimSpace(text)

	invalid := failure.NewInvalidArgumentError(
		fmt.Sprintf("invalid quantity %q", text),
		failure.WithCode(errcodes.InvalidQuantity),
	)

	if text == "" {
		return 0, invalid
	}

	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, invalid
		}
	}

	qty, err := strconv.Atoi(text)
	if err != nil || qty < 1 {
		return 0, invalid
	}

	return qty, nil
}

func (c *Controller) list(ctx context.Context, in Input, l listing) error {
	creds, ok, err := c.credentials(ctx, in)
	if err != nil || !ok {
		return err
	}

	return c.fetchList(ctx, in, creds, l)
}

func (c *Controller) fetchList(ctx context.Context, in Input, creds entity.Credentials, l listing) error {
	status, err := c.responder.Send(ctx, in.ChatID, textMessage(l.status))
	if err != nil {
		return fmt.Errorf("responder.Send: %w", err)
	}

	deals, err := l.fetch(ctx, creds)
	if err != nil {
		logger(ctx).Error("failed to fetch deals", logx.Error(err))
		return c.edit(ctx, status, textMessage(fetchErrorText(err)))
	}

	if len(deals) == 0 {
		return c.edit(ctx, status, textMessage(l.empty))
	}

	if err := c.edit(ctx, status, textMessage(l.found(len(deals)))); err != nil {
		return err
	}

	for _, deal := range deals {
		if err := c.send(ctx, in.ChatID, RenderDeal(ctx, deal, RenderOptions{PromoURL: c.promoURL})); err != nil {
			return err
		}
	}

	return nil
}

func (c *Controller) renderBrowse(ctx context.Context, state entity.BrowseState) Message {
	state = state.Move(0)
	deal, _ := state.Current()

	return RenderDeal(ctx, deal, RenderOptions{
		Navigation: true,
		Position:   state.Index + 1,
		Total:      len(state.Deals),
		PromoURL:   c.promoURL,
	})
}
