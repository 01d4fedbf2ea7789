// Package repository holds the data layer.
//
// There is no database behind this service: the country collection is
// process-wide in-memory state with explicit initialization (seed records)
// and an explicit access-serialization discipline. Records live exactly as
// long as the process does.
package repository
