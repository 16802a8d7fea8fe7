package migrations

import "database/sql"

func initOptionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE options (
			key VARCHAR(255) PRIMARY KEY,
			value TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
	`)

	return err
}
