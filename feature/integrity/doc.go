// Package integrity provides infrastructure health checks.
//
// Unlike the reconciliation engine, which compares content references with
// stored objects, this package validates what the engine relies on.
//
// # Checks Provided
//
//   - Structure: the bucket exists and every scanned folder (including the catch-all posters folder) holds at least one object.
//   - Schema: the media_records table and the reference column of every content kind exist with the expected types.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs schema check.
package integrity
