package conversation

import (
	"errors"
	"fmt"
	"html"

	"bfmr_bot/internal/domain"
	"bfmr_bot/pkg/errcodes"
)

// fetchErrorText — сообщение пользователю об ошибке загрузки сделок.
func fetchErrorText(err error) string {
	code, _ := domain.GetCode(err)

	switch code {
	case errcodes.CredentialsInvalid:
		return textCredentialsInvalid
	case errcodes.AccessForbidden:
		return textAccessForbidden
	case errcodes.DealsAPIUnavailable:
		return textAPIUnavailable
	case errcodes.MissingSearchTerm:
		return textMissingSearchTerm
	default:
		return textFetchFailed
	}
}

// reservationErrorText — сообщение об отказе в резервировании. Нераспознанный
// ответ сервера показывается как есть.
func reservationErrorText(err error) string {
	code, _ := domain.GetCode(err)

	switch code {
	case errcodes.DealNotAvailable:
		return textDealNotAvailable
	case errcodes.ReservationsClosed:
		return textReservationsClosed
	case errcodes.AlreadyReserved:
		return textAlreadyReserved
	case errcodes.ReservationLimitExceeded:
		return textReservationLimit
	case errcodes.OutOfStock:
		return textOutOfStock
	case errcodes.ReservationRejected:
		return fmt.Sprintf(textReservationRejected, html.EscapeString(domain.GetDetail(err)))
	case errcodes.CredentialsInvalid:
		return textCredentialsInvalid
	case errcodes.DealsAPIUnavailable:
		return textAPIUnavailable
	default:
		return textCommitFailed
	}
}

// verifyErrorText — причина неудачной проверки ключей для диалога /setup.
func verifyErrorText(err error) string {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return html.EscapeString(appErr.Message)
	}

	return "unexpected error"
}
