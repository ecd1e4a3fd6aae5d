//go:build integration

// Package testdb provides helpers for running store tests against real
// PostgreSQL and MySQL servers.
//
// Tests that need a server call GetTestDBWithT, which skips the test when the
// matching environment variable is not set, applies the embedded migrations
// and registers cleanup:
//
//	func TestPostgresTaskStore(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t, testdb.Postgres, postgres.Open)
//	    testdb.ResetTasks(t, db)
//	    s := postgres.NewPostgresTaskStore(db, nil)
//	    ...
//	}
//
// WithTx runs a function inside a transaction that is always rolled back,
// for tests that should leave no trace in the database.
//
// # Environment Variables
//
//   - TASKS_TEST_POSTGRES_URL: PostgreSQL connection URL
//   - TASKS_TEST_MYSQL_URL: MySQL DSN (go-sql-driver format)
package testdb
