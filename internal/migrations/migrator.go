package migrations

import (
	"fmt"

	"github.com/VladPetriv/currency_beacon/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/lopezator/migrator"
)

const migrationsTableName = "currency_beacon_migrations"

// MigrateDB applies pending migrations to the database.
func MigrateDB(log *logger.Logger, db *sqlx.DB, dbName string, migrations []any) error {
	logger := log.With().Str("name", "MigrateDB").Str("dbName", dbName).Logger()
	logger.Debug().Msg("migrating database ...")

	m, err := migrator.New(
		migrator.TableName(migrationsTableName),
		migrator.WithLogger(migrator.LoggerFunc(func(msg string, args ...any) {
			logger.Debug().Msgf(msg, args...)
		})),
		migrator.Migrations(migrations...),
	)
	if err != nil {
		return fmt.Errorf("init migrator: %w", err)
	}

	pending, err := m.Pending(db.DB)
	if err != nil {
		// Migrations table doesn't exist yet on a fresh database.
		logger.Debug().Err(err).Msg("got pending error")
		pending = migrations
	}
	if len(pending) == 0 {
		logger.Info().Int("dbVersion", len(migrations)).Msg("no new migrations were found")
		return nil
	}

	logger.Info().
		Int("dbVersion", len(migrations)-len(pending)).
		Int("pendingCount", len(pending)).
		Msg("new migrations were found, running migrations ...")

	err = m.Migrate(db.DB)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	logger.Info().Int("updatedDatabaseVersion", len(migrations)).Msg("migrations were successfully completed")
	return nil
}
