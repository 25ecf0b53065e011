// Package assetpath canonicalizes stored asset references into bucket-relative
// paths that can be used as comparison keys.
//
// Content records store either a full public object URL, e.g.
//
//	https://cdn.example.com/storage/v1/object/public/assets/blog/1712.jpg
//
// or an already bare key such as "blog/1712.jpg". Both normalize to the same
// AssetPath ("blog/1712.jpg"). Normalization is pure and idempotent.
//
// The package also owns the poster naming convention used for video uploads:
//
//	GuessPoster("portfolio/12345.mp4") == "portfolio/posters/12345.jpg"
package assetpath
