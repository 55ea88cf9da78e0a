package handler

import (
	"log/slog"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"bfmr_bot/pkg/logx"
)

const (
	CommandStart      = "start"
	CommandSetup      = "setup"
	CommandCancel     = "cancel"
	CommandHelp       = "help"
	CommandDeals      = "deals"
	CommandProfitable = "profitable"
	CommandViewAll    = "viewall"
	CommandSearch     = "search"
)

// Commands — меню бота для SetMyCommands.
func Commands() []telego.BotCommand {
	return []telego.BotCommand{
		{Command: CommandStart, Description: "Start the bot"},
		{Command: CommandSetup, Description: "Configure BFMR API credentials"},
		{Command: CommandDeals, Description: "Browse deals one by one"},
		{Command: CommandProfitable, Description: "Show profitable deals"},
		{Command: CommandViewAll, Description: "Show all deals"},
		{Command: CommandSearch, Description: "Search deals: /search <term>"},
		{Command: CommandCancel, Description: "Cancel the current operation"},
		{Command: CommandHelp, Description: "Show help"},
	}
}

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.controller.Start(ctx, messageInput(msg))
}

func (h *Handler) OnHelp(ctx *th.Context, msg telego.Message) error {
	return h.controller.Help(ctx, messageInput(msg))
}

func (h *Handler) OnSetup(ctx *th.Context, msg telego.Message) error {
	return h.controller.Setup(ctx, messageInput(msg))
}

func (h *Handler) OnCancel(ctx *th.Context, msg telego.Message) error {
	return h.controller.Cancel(ctx, messageInput(msg))
}

func (h *Handler) OnDeals(ctx *th.Context, msg telego.Message) error {
	return h.controller.Browse(ctx, messageInput(msg))
}

func (h *Handler) OnProfitable(ctx *th.Context, msg telego.Message) error {
	return h.controller.Profitable(ctx, messageInput(msg))
}

func (h *Handler) OnViewAll(ctx *th.Context, msg telego.Message) error {
	return h.controller.ViewAll(ctx, messageInput(msg))
}

// OnSearch передаёт контроллеру всё, что идёт после команды.
func (h *Handler) OnSearch(ctx *th.Context, msg telego.Message) error {
	_, _, payload := tu.ParseCommandPayload(msg.Text)

	return h.controller.Search(ctx, messageInput(msg), strings.TrimSpace(payload))
}

// OnText — ответы на вопросы бота: ключи API или количество.
// Текст не логируется, в нём может быть секрет.
func (h *Handler) OnText(ctx *th.Context, msg telego.Message) error {
	logger(ctx).Debug("text message received", slog.Int(logx.FieldMessageID, msg.MessageID))

	return h.controller.Text(ctx, messageInput(msg), msg.Text)
}
