package migrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the postgres schema history for quiz_results.
var Migrations = migrate.NewMigrations()
