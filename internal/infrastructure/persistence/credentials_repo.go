package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"bfmr_bot/internal/domain"
	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/pkg/errcodes"
)

// CredentialsRepository хранит ключи BFMR пользователей бота в Postgres
// (таблица bot_credentials, см. migrations/).
type CredentialsRepository struct {
	db *sqlx.DB
}

func NewCredentialsRepository(db *sqlx.DB) *CredentialsRepository {
	return &CredentialsRepository{db: db}
}

func (r *CredentialsRepository) Get(ctx context.Context, userID int64) (entity.Credentials, bool, error) {
	query := `SELECT user_id, api_key, api_secret, setup_date, updated_at FROM bot_credentials WHERE user_id = $1`

	var schema credentialsSchema
	if err := r.db.GetContext(ctx, &schema, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Credentials{}, false, nil
		}

		return entity.Credentials{}, false, domain.WrapError(err, errcodes.InternalServerError, "failed to get credentials")
	}

	return schema.toDomain(), true, nil
}

// Save перезаписывает ключи пользователя целиком (повторный /setup).
func (r *CredentialsRepository) Save(ctx context.Context, userID int64, creds entity.Credentials) error {
	schema := fromCredentials(userID, creds)
	schema.UpdatedAt = time.Now()

	query := `
		INSERT INTO bot_credentials (user_id, api_key, api_secret, setup_date, updated_at)
		VALUES (:user_id, :api_key, :api_secret, :setup_date, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			api_key = EXCLUDED.api_key,
			api_secret = EXCLUDED.api_secret,
			setup_date = EXCLUDED.setup_date,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, schema); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to save credentials")
	}

	return nil
}

func (r *CredentialsRepository) Delete(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bot_credentials WHERE user_id = $1`, userID); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to delete credentials")
	}

	return nil
}
