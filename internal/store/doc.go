// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, so the task service works unchanged on top of
// an in-memory map, an embedded SQLite database or a networked SQL server.
package store
