package dbtest

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
)

// MigrateFromFile executes all SQL queries from the files over a database
// connection. Files are applied in the given order; migrations are expected to
// be idempotent (CREATE ... IF NOT EXISTS).
func MigrateFromFile(db *sqlx.DB, fileNames ...string) error {
	for _, fileName := range fileNames {
		fileBytes, err := os.ReadFile(fileName)
		if err != nil {
			return fmt.Errorf("os.ReadFile: %w", err)
		}

		if _, err = db.Exec(string(fileBytes)); err != nil {
			return fmt.Errorf("db.Exec(%s): %w", fileName, err)
		}
	}

	return nil
}
