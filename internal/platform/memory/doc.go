// Package memory provides a map-backed implementation of store.TaskStore.
// Data lives only as long as the process; it suits tests and throwaway runs.
package memory
