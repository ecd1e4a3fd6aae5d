// Package mysql provides the MySQL implementation of store.TaskStore, built
// on github.com/go-sql-driver/mysql with github.com/jmoiron/sqlx for row
// mapping. Connection strings use the driver's DSN format, for example
// "user:pass@tcp(localhost:3306)/tasks".
package mysql
