package contextx

import (
	"context"
	"fmt"
	"strconv"
)

// UserID — идентификатор пользователя Telegram, от которого пришёл апдейт.
type UserID int64

type contextKeyUserID struct{}

func (u UserID) String() string {
	return strconv.FormatInt(int64(u), 10)
}

func WithUserID(ctx context.Context, userID UserID) context.Context {
	return context.WithValue(ctx, contextKeyUserID{}, userID)
}

func UserIDFromContext(ctx context.Context) (UserID, error) {
	userID, ok := ctx.Value(contextKeyUserID{}).(UserID)
	if !ok {
		return 0, fmt.Errorf("user id: %w", ErrNoValue)
	}

	return userID, nil
}
