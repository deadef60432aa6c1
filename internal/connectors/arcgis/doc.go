// Package arcgis fetches CRC well catalog features from an ArcGIS MapServer.
//
// Each collection is one layer of the map service. Features are requested
// as GeoJSON through the layer's query endpoint, one page at a time:
//
//	{base}/{layer}/query?where=0=0&outFields=*&returnGeometry=true
//	    &resultOffset={offset}&resultRecordCount={size}&f=geojson
//
// The service caps a page at 1,000 features. Paging stops at the first
// page with no features, so a collection of N pages costs N+1 requests.
//
// # Error Handling
//
// Every page request is an idempotent read and is retried with bounded
// exponential backoff on network errors, 429 and 5xx responses. ArcGIS
// also reports query errors in a 200 response body; those are classified
// by the error code they carry.
// If any page still fails, the whole fetch fails and no partial result is
// returned.
package arcgis
