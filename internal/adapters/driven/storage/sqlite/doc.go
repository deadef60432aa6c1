// Package sqlite provides a SQLite-based implementation of the harvest's
// local stores.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements two store interfaces
// through a single database connection:
//
//   - RecordCache: the last complete fetch of each collection
//   - RunStore: run summaries and per-record outcomes for triage
//
// Neither store is authoritative. The destination catalog alone decides
// which records have been harvested.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.crc-harvest/data/harvest.db
package sqlite
