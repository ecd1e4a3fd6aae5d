// Package migrations owns the task schema. The SQL files for every supported
// dialect are embedded in the binary and applied with goose.
package migrations
