package assetpath

import (
	"path"
	"strings"
)

// DefaultMarker is the URL segment that precedes "<bucket>/<key>" in public object URLs.
const DefaultMarker = "/storage/v1/object/public/"

// PostersDir is the sub-folder that holds generated video posters.
const PostersDir = "posters"

// Normalizer turns raw asset references into bucket-relative paths.
type Normalizer struct {
	baseURL string
	bucket  string
	marker  string
}

// New creates a Normalizer for the given public base URL and bucket.
// An empty marker falls back to DefaultMarker.
func New(baseURL, bucket, marker string) *Normalizer {
	if marker == "" {
		marker = DefaultMarker
	}
	return &Normalizer{
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  strings.Trim(bucket, "/"),
		marker:  marker,
	}
}

// Normalize returns the AssetPath for raw, or false when raw does not reference
// a storage object (empty, foreign URL, data URI, schemeless host, absolute path, no folder).
//
// The returned path never starts with the bucket segment and never contains the
// marker, so Normalize(Normalize(x)) == Normalize(x).
func (n *Normalizer) Normalize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	key := raw
	if idx := strings.Index(raw, n.marker); idx >= 0 {
		key = raw[idx+len(n.marker):]
	} else if strings.Contains(raw, "://") {
		return "", false
	}

	if n.bucket != "" {
		key = strings.TrimPrefix(key, n.bucket+"/")
	}

	if !valid(key) {
		return "", false
	}
	// A second bucket segment or marker would be stripped again on the next pass.
	if n.bucket != "" && strings.HasPrefix(key, n.bucket+"/") {
		return "", false
	}
	if strings.Contains(key, n.marker) || strings.Contains(key, "://") {
		return "", false
	}

	return key, true
}

// NormalizePtr is Normalize for nullable columns.
func (n *Normalizer) NormalizePtr(raw *string) (string, bool) {
	if raw == nil {
		return "", false
	}
	return n.Normalize(*raw)
}

// PublicURL builds the public object URL for an AssetPath.
func (n *Normalizer) PublicURL(assetPath string) string {
	return n.baseURL + n.marker + n.bucket + "/" + assetPath
}

// Bucket returns the bucket name stripped by this normalizer.
func (n *Normalizer) Bucket() string {
	return n.bucket
}

// valid reports whether key has the <folder>/<filename> shape. The folder
// segment must not carry a scheme ("data:", "blob:") or a host ("www.example.com").
func valid(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.HasSuffix(key, "/") {
		return false
	}
	folder, _, ok := strings.Cut(key, "/")
	if !ok {
		return false
	}
	return !strings.ContainsAny(folder, ":.")
}

// GuessPoster derives the poster path for an asset: folder/name.ext -> folder/posters/name.jpg.
func GuessPoster(assetPath string) string {
	dir, file := path.Split(assetPath)
	name := strings.TrimSuffix(file, path.Ext(file))
	return dir + PostersDir + "/" + name + ".jpg"
}

// Folder returns the top-level folder of an AssetPath.
func Folder(assetPath string) string {
	if idx := strings.Index(assetPath, "/"); idx >= 0 {
		return assetPath[:idx]
	}
	return ""
}
