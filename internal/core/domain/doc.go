// Package domain defines the core business entities for crc-harvest.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawRecord: A feature fetched from the CRC well catalog feature service
//   - Record: The normalised form of one RawRecord, ready for the catalog
//   - ReconciliationSet: Identifiers already present in a destination collection
//   - SubmissionResult: The outcome of one catalog create call
//   - RunReport: The outcome of one harvest run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
