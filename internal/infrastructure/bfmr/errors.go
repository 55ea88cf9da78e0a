package bfmr

import (
	"fmt"
	"net/http"
	"strings"

	"git.appkode.ru/pub/go/failure"

	"bfmr_bot/internal/domain"
	"bfmr_bot/pkg/errcodes"
)

// Известные фрагменты message из ответа /deals/reserve. Порядок важен:
// проверяется первое совпадение.
//
//nolint:gochecknoglobals
var reservationRejections = []struct {
	fragment string
	code     failure.ErrorCode
	message  string
}{
	{fragment: "not available", code: errcodes.DealNotAvailable, message: "deal is no longer available"},
	{fragment: "reservations is closed", code: errcodes.ReservationsClosed, message: "deal is closed for reservations"},
	{fragment: "already reserved", code: errcodes.AlreadyReserved, message: "deal is already reserved"},
	{fragment: "limit exceeded", code: errcodes.ReservationLimitExceeded, message: "reservation limit exceeded"},
	{fragment: "quantity reserved failed", code: errcodes.OutOfStock, message: "no units available"},
}

// classifyReservation сопоставляет текст сервера без учёта регистра.
// Нераспознанный текст возвращается как ReservationRejected с исходным
// сообщением в Detail.
func classifyReservation(status int, message string) error {
	lower := strings.ToLower(message)

	for _, r := range reservationRejections {
		if strings.Contains(lower, r.fragment) {
			return domain.NewError(r.code, r.message).WithDetail(message)
		}
	}

	switch {
	case status == http.StatusUnauthorized:
		return domain.NewError(errcodes.CredentialsInvalid, "invalid API credentials").WithDetail(message)
	case status >= http.StatusInternalServerError && message == "":
		return domain.NewError(errcodes.DealsAPIUnavailable, fmt.Sprintf("BFMR API returned %d", status))
	}

	if message == "" {
		message = unknownMessage
	}

	return domain.NewError(errcodes.ReservationRejected, "reservation rejected").WithDetail(message)
}

func statusError(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized:
		return domain.NewError(errcodes.CredentialsInvalid, "invalid API credentials")
	case status == http.StatusForbidden:
		return domain.NewError(errcodes.AccessForbidden, "access forbidden")
	case status >= http.StatusInternalServerError:
		return domain.NewError(errcodes.DealsAPIUnavailable, fmt.Sprintf("BFMR API returned %d", status))
	default:
		return domain.NewError(errcodes.DealsAPIError, fmt.Sprintf("BFMR API returned %d", status)).
			WithDetail(serverMessage(body))
	}
}
