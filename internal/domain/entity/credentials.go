package entity

import "time"

// Credentials — ключи BFMR API пользователя. Создаются только после успешной
// проверки, повторный /setup перезаписывает их целиком.
type Credentials struct {
	APIKey    string    `json:"api_key" db:"api_key" validate:"required"`
	APISecret string    `json:"api_secret" db:"api_secret" validate:"required"`
	SetupDate time.Time `json:"setup_date" db:"setup_date"`
}
