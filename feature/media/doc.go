// Package media ingests uploaded images and videos and tracks their derived posters.
//
// Uploads are stored under <folder>/<unix millis><ext>. For videos a poster is
// grabbed with ffmpeg and stored at folder/posters/name.jpg; a MediaRecord binds
// the uploaded path to its poster so deleting the video can cascade to it.
//
// A poster failure never fails the upload: the record is created with a null
// poster path and the response carries poster_error.
//
// The Repository implements reconcile.Tracker.
//
// # HTTP Endpoints
//
//   - POST /admin/media/upload : multipart upload (file, folder).
//   - GET /admin/media?path= : media record of a stored path.
package media
