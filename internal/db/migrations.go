package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS submissions (
		id                   INTEGER  PRIMARY KEY,
		selected_date        TEXT     NOT NULL,
		phone_number         TEXT     NOT NULL CHECK (length(phone_number) = 9),
		activities           TEXT     NOT NULL DEFAULT '[]',
		activity_description TEXT     NOT NULL DEFAULT '',
		created_at           DATETIME NOT NULL
	)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
