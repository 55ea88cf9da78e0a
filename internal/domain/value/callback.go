package value

import (
	"fmt"
	"strings"
)

// Данные inline-кнопок.
const (
	CallbackPrevDeal       = "prev_deal"
	CallbackNextDeal       = "next_deal"
	CallbackViewAll        = "view_all"
	CallbackViewProfitable = "view_profitable"

	SelectCallbackPrefix = "select_"
)

// SelectCallback собирает данные кнопки выбора позиции.
func SelectCallback(dealID, itemID string) string {
	return SelectCallbackPrefix + dealID + "_" + itemID
}

// IsSelectCallback проверяет префикс кнопки выбора позиции.
func IsSelectCallback(data string) bool {
	return strings.HasPrefix(data, SelectCallbackPrefix)
}

// ParseSelectCallback делит "select_<deal>_<item>" максимум на три части:
// id позиции может сам содержать "_".
func ParseSelectCallback(data string) (dealID, itemID string, err error) {
	parts := strings.SplitN(data, "_", 3) //nolint:mnd
	if len(parts) != 3 || parts[0]+"_" != SelectCallbackPrefix || parts[1] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("malformed select callback %q", data)
	}

	return parts[1], parts[2], nil
}
