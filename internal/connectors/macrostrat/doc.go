// Package macrostrat enriches records with geologic map facts from the
// Macrostrat point API.
//
// For a record with a location it requests
//
//	{base}/mobile/point?lat={lat}&lng={lng}
//
// and turns the unit's rock types, age and name into theme tags. The full
// response data is kept on the record for the item body.
package macrostrat
