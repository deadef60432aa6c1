// Package connectors holds the HTTP clients for the services a harvest
// talks to. Each subpackage implements driven ports for one service:
//
//   - arcgis: the CRC well catalog feature service (SourceFetcher)
//   - sciencebase: the destination catalog (CatalogReader, CatalogSubmitter)
//   - macrostrat: geologic map context (Enricher)
//   - crcweb: the CRC sample report pages (Enricher)
//
// Connectors never decide what to harvest. They fetch, retry idempotent
// reads, and classify failures into domain errors.
package connectors
