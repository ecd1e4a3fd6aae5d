// Package sqlite provides an embedded, cgo-free SQLite implementation of
// store.TaskStore built on modernc.org/sqlite. The default ":memory:" data
// source gives the service a throwaway relational store with no setup.
package sqlite
