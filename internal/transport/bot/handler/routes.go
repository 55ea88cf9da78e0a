package handler

import (
	"time"

	th "github.com/mymmrac/telego/telegohandler"

	"bfmr_bot/internal/domain/value"
	"bfmr_bot/internal/transport/bot/middleware"
)

type Options struct {
	AllowedUsers  []int64
	UpdateTimeout time.Duration
	// Sequencer должен видеть и канал апдейтов BotHandler, см. Sequencer.Updates.
	Sequencer *middleware.Sequencer
}

// RegisterRoutes подключает middleware и обработчики. mws выполняются
// первыми в переданном порядке, за ними Sequencer, Recovery, Timeout и AllowList.
func (h *Handler) RegisterRoutes(bh *th.BotHandler, opts Options, mws ...th.Handler) {
	bh.Use(mws...)

	if opts.Sequencer != nil {
		bh.Use(opts.Sequencer.Handler())
	}

	bh.Use(middleware.Recovery())

	if opts.UpdateTimeout > 0 {
		bh.Use(th.Timeout(opts.UpdateTimeout))
	}

	bh.Use(middleware.AllowList(opts.AllowedUsers...))

	messages := bh.Group(th.AnyMessageWithFrom())
	messages.HandleMessage(h.OnStart, th.CommandEqual(CommandStart))
	messages.HandleMessage(h.OnSetup, th.CommandEqual(CommandSetup))
	messages.HandleMessage(h.OnCancel, th.CommandEqual(CommandCancel))
	messages.HandleMessage(h.OnHelp, th.CommandEqual(CommandHelp))
	messages.HandleMessage(h.OnDeals, th.CommandEqual(CommandDeals))
	messages.HandleMessage(h.OnProfitable, th.CommandEqual(CommandProfitable))
	messages.HandleMessage(h.OnViewAll, th.CommandEqual(CommandViewAll))
	messages.HandleMessage(h.OnSearch, th.CommandEqual(CommandSearch))
	messages.HandleMessage(h.OnText, th.AnyMessageWithText(), th.Not(th.AnyCommand()))

	callbacks := bh.Group(th.AnyCallbackQueryWithMessage())
	callbacks.HandleCallbackQuery(h.OnPrevDeal, th.CallbackDataEqual(value.CallbackPrevDeal))
	callbacks.HandleCallbackQuery(h.OnNextDeal, th.CallbackDataEqual(value.CallbackNextDeal))
	callbacks.HandleCallbackQuery(h.OnViewAllCallback, th.CallbackDataEqual(value.CallbackViewAll))
	callbacks.HandleCallbackQuery(h.OnProfitableCallback, th.CallbackDataEqual(value.CallbackViewProfitable))
	callbacks.HandleCallbackQuery(h.OnSelectItem, th.CallbackDataPrefix(value.SelectCallbackPrefix))
}
