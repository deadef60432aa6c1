// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SourceFetcher: Fetches raw records from the feature service
//   - SchemaMapper / MapperRegistry: Normalise raw records per collection type
//   - CatalogReader: Lists destination items for reconciliation
//   - CatalogSubmitter: Creates one destination item per record
//   - TokenProvider: Catalog session credentials
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Enricher: Secondary lookups. With none configured records are submitted unenriched.
//   - RecordCache: Local copy of the last fetch. Without it every run hits the network.
//   - RunStore: Triage log. Without it outcomes are only logged.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or mapper package
package driven
