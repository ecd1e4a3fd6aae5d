// Package postgres provides the PostgreSQL implementation of store.TaskStore.
// Connections go through the pgx database/sql driver; PostgreSQL error codes
// are read from pgconn.PgError and mapped onto the store sentinel errors.
package postgres
