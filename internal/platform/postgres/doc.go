// Package postgres stores conversation phrases in PostgreSQL through the
// pgx database/sql driver and owns the goose migrations for its schema.
package postgres
