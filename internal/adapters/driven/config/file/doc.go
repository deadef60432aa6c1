// Package file provides the TOML configuration store persisted under the
// crc-harvest config directory.
package file
