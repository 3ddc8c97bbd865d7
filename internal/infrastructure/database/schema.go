package database

import (
	"context"
	"fmt"
	"log"
)

// schemaStatements create the two tables the application owns. The salary
// table references employees; to_date IS NULL marks the open (current)
// salary record.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		ssn        TEXT NOT NULL UNIQUE,
		dob        DATE NOT NULL,
		address    TEXT NOT NULL,
		city       TEXT NOT NULL,
		country    TEXT NOT NULL,
		zip        TEXT NOT NULL,
		phone      TEXT NOT NULL,
		join_date  DATE NOT NULL,
		exit_date  DATE
	)`,
	`CREATE TABLE IF NOT EXISTS employee_salaries (
		id          BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		from_date   DATE NOT NULL,
		to_date     DATE,
		title       TEXT NOT NULL,
		salary      BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_employee_salaries_employee_id
		ON employee_salaries (employee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_employee_salaries_title
		ON employee_salaries (title)`,
}

// EnsureSchema creates the tables at startup when they do not exist yet.
// Schema changes beyond that are handled outside the application.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	log.Println("[DATABASE] Schema ensured")
	return nil
}
