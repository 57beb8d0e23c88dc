package migrations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hare-edu/hare-backend/internal/pkg/logger"
)

// Migrator creates the application schema at startup. Table creation is
// idempotent: only tables missing from the public schema are created, and
// existing tables are never altered.
type Migrator struct {
	db *pgxpool.Pool
}

// NewMigrator creates a new migrator
func NewMigrator(db *pgxpool.Pool) *Migrator {
	return &Migrator{
		db: db,
	}
}

// tableDefinition pairs a table name with its DDL. Order matters: tables
// are created parents first so foreign keys resolve.
type tableDefinition struct {
	name string
	ddl  string
}

var tables = []tableDefinition{
	{
		name: "users",
		ddl: `CREATE TABLE users (
			id BIGSERIAL PRIMARY KEY,
			first_names VARCHAR(255) NOT NULL,
			last_name VARCHAR(255) NOT NULL,
			phone VARCHAR(50),
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL,
			CONSTRAINT uq_users_names UNIQUE (first_names, last_name)
		)`,
	},
	{
		name: "document_types",
		ddl: `CREATE TABLE document_types (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE
		)`,
	},
	{
		name: "enrollment_statuses",
		ddl: `CREATE TABLE enrollment_statuses (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE
		)`,
	},
	{
		name: "schools",
		ddl: `CREATE TABLE schools (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE
		)`,
	},
	{
		name: "municipalities",
		ddl: `CREATE TABLE municipalities (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE
		)`,
	},
	{
		name: "students",
		ddl: `CREATE TABLE students (
			id BIGSERIAL PRIMARY KEY,
			code VARCHAR(50) NOT NULL,
			name VARCHAR(255) NOT NULL,
			document_type_id BIGINT NOT NULL REFERENCES document_types(id),
			document VARCHAR(50) NOT NULL,
			semester VARCHAR(50) NOT NULL,
			pensum VARCHAR(50) NOT NULL,
			intake_period VARCHAR(50) NOT NULL,
			enrollment_status_id BIGINT NOT NULL REFERENCES enrollment_statuses(id),
			phone VARCHAR(50),
			personal_email VARCHAR(255),
			institutional_email VARCHAR(255) NOT NULL,
			school_id BIGINT NOT NULL REFERENCES schools(id),
			municipality_id BIGINT NOT NULL REFERENCES municipalities(id),
			CONSTRAINT uq_students_code_document UNIQUE (code, document)
		)`,
	},
	{
		name: "evaluation_metrics",
		ddl: `CREATE TABLE evaluation_metrics (
			id BIGSERIAL PRIMARY KEY,
			student_id BIGINT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			average DOUBLE PRECISION NOT NULL
		)`,
	},
	{
		// No uniqueness constraint on (user_id, student_id); duplicate
		// guarding is a pre-insert existence check on the import path.
		name: "user_students",
		ddl: `CREATE TABLE user_students (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			student_id BIGINT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			indexed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	},
}

// existingTables returns the set of table names already present in the
// public schema.
func (m *Migrator) existingTables(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing tables: %w", err)
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		existing[name] = true
	}

	return existing, rows.Err()
}

// EnsureSchema creates any missing application tables.
func (m *Migrator) EnsureSchema(ctx context.Context) error {
	existing, err := m.existingTables(ctx)
	if err != nil {
		return err
	}

	created := 0
	for _, table := range tables {
		if existing[table.name] {
			continue
		}

		if _, err := m.db.Exec(ctx, table.ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
		logger.Info().Str("table", table.name).Msg("Created missing table")
		created++
	}

	if created == 0 {
		logger.Info().Msg("All tables already exist")
	}

	return nil
}
