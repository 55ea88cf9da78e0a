package entity

// Reservation — заявка на выкуп позиции сделки.
type Reservation struct {
	DealID   string `validate:"required"`
	ItemID   string `validate:"required"`
	Quantity int    `validate:"gte=1"`
}

type ReservationResult struct {
	Message string
}
