package persistence

import (
	"time"

	"bfmr_bot/internal/domain/entity"
)

// credentialsSchema — строка таблицы bot_credentials.
type credentialsSchema struct {
	UserID    int64     `db:"user_id"`
	APIKey    string    `db:"api_key"`
	APISecret string    `db:"api_secret"`
	SetupDate time.Time `db:"setup_date"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (s credentialsSchema) toDomain() entity.Credentials {
	return entity.Credentials{
		APIKey:    s.APIKey,
		APISecret: s.APISecret,
		SetupDate: s.SetupDate,
	}
}

func fromCredentials(userID int64, creds entity.Credentials) credentialsSchema {
	setupDate := creds.SetupDate
	if setupDate.IsZero() {
		setupDate = time.Now()
	}

	return credentialsSchema{
		UserID:    userID,
		APIKey:    creds.APIKey,
		APISecret: creds.APISecret,
		SetupDate: setupDate,
	}
}
