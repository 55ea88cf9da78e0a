package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	Unauthorized        failure.ErrorCode = "Unauthorized"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// BFMR API
	CredentialsInvalid  failure.ErrorCode = "CredentialsInvalid"  // 401 от API
	CredentialsMissing  failure.ErrorCode = "CredentialsMissing"  // пользователь не прошёл /setup
	AccessForbidden     failure.ErrorCode = "AccessForbidden"     // 403 от API
	DealsAPIUnavailable failure.ErrorCode = "DealsAPIUnavailable" // сеть или 5xx
	DealsAPIError       failure.ErrorCode = "DealsAPIError"       // прочие не-200
	InvalidDealsPayload failure.ErrorCode = "InvalidDealsPayload"

	// Резервирование
	DealNotAvailable         failure.ErrorCode = "DealNotAvailable"
	ReservationsClosed       failure.ErrorCode = "ReservationsClosed"
	AlreadyReserved          failure.ErrorCode = "AlreadyReserved"
	ReservationLimitExceeded failure.ErrorCode = "ReservationLimitExceeded"
	OutOfStock               failure.ErrorCode = "OutOfStock"
	ReservationRejected      failure.ErrorCode = "ReservationRejected"

	// Ввод пользователя
	InvalidQuantity    failure.ErrorCode = "InvalidQuantity"
	InvalidReservation failure.ErrorCode = "InvalidReservation"
	MissingSearchTerm  failure.ErrorCode = "MissingSearchTerm"
	InvalidCallback    failure.ErrorCode = "InvalidCallback"
	InvalidTransition  failure.ErrorCode = "InvalidTransition"
	BrowseExpired      failure.ErrorCode = "BrowseExpired"
)
