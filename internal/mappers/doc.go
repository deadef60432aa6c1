// Package mappers provides SchemaMapper implementations for the CRC well
// catalog collections. Each collection type publishes its own property
// names; a mapper pairs the shared mapping rules with one FieldTable.
//
// Mappers are registered with the Registry at startup.
package mappers
