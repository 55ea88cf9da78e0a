package middleware

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

// AllowList пропускает апдейты только от перечисленных пользователей.
// Пустой список означает публичного бота.
func AllowList(userIDs ...int64) th.Handler {
	allowed := make(map[int64]struct{}, len(userIDs))
	for _, id := range userIDs {
		allowed[id] = struct{}{}
	}

	return func(ctx *th.Context, update telego.Update) error {
		if len(allowed) == 0 {
			return ctx.Next(update)
		}

		o, ok := originOf(update)
		if !ok {
			return nil
		}

		if _, found := allowed[o.userID]; found {
			return ctx.Next(update)
		}

		logger(ctx).Debug("update from user outside allow list dropped")

		return nil
	}
}
