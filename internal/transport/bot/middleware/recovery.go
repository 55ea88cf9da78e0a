package middleware

import (
	"fmt"
	"runtime/debug"

	"git.appkode.ru/pub/go/failure"
	th "github.com/mymmrac/telego/telegohandler"

	"bfmr_bot/pkg/errcodes"
)

// Recovery превращает панику обработчика в ошибку со стеком в описании.
func Recovery() th.Handler {
	return th.PanicRecoveryHandler(func(recovered any) error {
		return failure.NewInternalServerError(
			fmt.Sprintf("panic: %v", recovered),
			failure.WithCode(errcodes.InternalServerError),
			failure.WithDescription(string(debug.Stack())),
		)
	})
}
