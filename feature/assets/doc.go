// Package assets exposes storage audit and garbage collection over HTTP.
//
// # HTTP Endpoints
//
//   - GET /admin/storage/audit : linked, orphan and missing assets.
//   - POST /admin/storage/delete : bulk delete with poster cascade. Body {"files": [...]}; ?dry_run=true only plans.
//   - POST /admin/storage/posters/cleanup : removes unreferenced posters.
//
// Errors are rendered by server.WriteError.
package assets
