package migrations

import "github.com/lopezator/migrator"

// Migrations represents all database migrations in order of applying.
var Migrations = []any{
	&migrator.MigrationNoTx{
		Name: "Init option table",
		Func: initOptionTable,
	},
}
