package handler

import (
	"log/slog"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"bfmr_bot/pkg/logx"
)

func (h *Handler) OnPrevDeal(ctx *th.Context, query telego.CallbackQuery) error {
	answer(ctx, query)

	return h.controller.Navigate(ctx, callbackInput(query), -1)
}

func (h *Handler) OnNextDeal(ctx *th.Context, query telego.CallbackQuery) error {
	answer(ctx, query)

	return h.controller.Navigate(ctx, callbackInput(query), 1)
}

func (h *Handler) OnViewAllCallback(ctx *th.Context, query telego.CallbackQuery) error {
	answer(ctx, query)

	return h.controller.ViewAll(ctx, callbackInput(query))
}

func (h *Handler) OnProfitableCallback(ctx *th.Context, query telego.CallbackQuery) error {
	answer(ctx, query)

	return h.controller.Profitable(ctx, callbackInput(query))
}

func (h *Handler) OnSelectItem(ctx *th.Context, query telego.CallbackQuery) error {
	answer(ctx, query)

	return h.controller.SelectItem(ctx, callbackInput(query), query.Data)
}

// answer убирает «часики» на кнопке. Ошибка не мешает обработке нажатия.
func answer(ctx *th.Context, query telego.CallbackQuery) {
	logger(ctx).Debug("callback received", slog.String(logx.FieldCallbackData, query.Data))

	if err := ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID)); err != nil {
		logger(ctx).Warn("failed to answer callback query", logx.Error(err))
	}
}
