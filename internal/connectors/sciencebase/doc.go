// Package sciencebase reads and writes items in a ScienceBase catalog.
//
// # Reading
//
// [Reader] lists the items under a parent collection, asking only for the
// identifiers field, and follows the response's nextlink until it is
// absent. Reads are idempotent and retried with bounded backoff.
//
// # Writing
//
// [Submitter] performs exactly one POST /item/ per record. Creates are
// never retried: a retried create that had in fact succeeded would store a
// duplicate item. The result distinguishes three outcomes:
//
//   - Created: any 2xx response.
//   - Failed: an explicit 4xx or 5xx rejection. Nothing was stored.
//   - Unknown: the connection failed after the request may have been sent,
//     the call timed out, or a gateway answered 502/504. The item may or may
//     not exist; the next run's reconciliation decides.
//
// # Authentication
//
// The session token comes from a [driven.TokenProvider] passed to
// [NewClient]. Requests carry it as a bearer token through an oauth2
// transport. Without a token only public reads work.
//
// # Rate Limiting
//
// All calls share one token bucket limiter. The catalog aborts long-running
// operations under load, so the default is one request per second.
package sciencebase
