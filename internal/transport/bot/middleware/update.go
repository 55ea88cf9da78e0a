package middleware

import "github.com/mymmrac/telego"

const (
	KindMessage  = "message"
	KindCallback = "callback_query"
	KindOther    = "other"
)

// origin — кто прислал апдейт и в какой чат отвечать.
type origin struct {
	kind   string
	userID int64
	chatID int64
}

func originOf(update telego.Update) (origin, bool) {
	switch {
	case update.Message != nil:
		o := origin{kind: KindMessage, chatID: update.Message.Chat.ID}
		if update.Message.From != nil {
			o.userID = update.Message.From.ID
		}

		return o, o.userID != 0

	case update.CallbackQuery != nil:
		o := origin{kind: KindCallback, userID: update.CallbackQuery.From.ID}
		if update.CallbackQuery.Message != nil {
			o.chatID = update.CallbackQuery.Message.GetChat().ID
		}

		return o, true
	}

	return origin{kind: KindOther}, false
}
