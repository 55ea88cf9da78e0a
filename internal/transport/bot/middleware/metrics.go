package middleware

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

type UpdateCounter interface {
	IncUpdate(kind, outcome string)
}

func Metrics(counter UpdateCounter) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		o, _ := originOf(update)

		err := ctx.Next(update)

		outcome := OutcomeOK
		if err != nil {
			outcome = OutcomeError
		}

		counter.IncUpdate(o.kind, outcome)

		return err
	}
}
