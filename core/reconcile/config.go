package reconcile

import (
	"path"
	"strings"
	"time"

	"asset-janitor/core/assetpath"
	"asset-janitor/core/utils"
)

// MinPageSize is the smallest number of entries listed per folder.
const MinPageSize = 1000

// Config holds the asset scope shared by the engine, the collector and the ingest path.
type Config struct {
	// ScanFolders are the top-level content folders visible to the engine.
	ScanFolders []string `mapstructure:"scan_folders" default:"services,portfolio,testimonials,blog"`
	// CatchAllFolder receives uploads without a content folder; its posters sub-folder is cleaned up.
	CatchAllFolder string `mapstructure:"catch_all_folder" default:"misc" validate:"required,excludes=/"`
	// UploadFolders are the folders accepted by the upload endpoint.
	UploadFolders []string `mapstructure:"upload_folders" default:"services,portfolio,testimonials,blog,misc"`
	// ContentKinds selects the content tables scanned for references (name or name=table.column).
	ContentKinds []string `mapstructure:"content_kinds" default:"blog_posts,portfolio_items,services"`
	// PageSize is the listing limit per folder.
	PageSize int `mapstructure:"page_size" default:"1000" validate:"gte=1000"`
	// URLMarker precedes "<bucket>/<key>" in public object URLs.
	URLMarker string `mapstructure:"url_marker" default:"/storage/v1/object/public/" validate:"required"`
	// FFmpegPath is the binary used to grab video posters.
	FFmpegPath string `mapstructure:"ffmpeg_path" default:"ffmpeg"`
	// PosterTimeoutSeconds bounds a single poster generation.
	PosterTimeoutSeconds int `mapstructure:"poster_timeout_seconds" default:"30"`
	// OperationTimeoutSeconds bounds a shared audit or cleanup run.
	OperationTimeoutSeconds int `mapstructure:"operation_timeout_seconds" default:"300"`
}

// Normalize trims list entries and drops blanks and duplicates.
func (c *Config) Normalize() {
	c.ScanFolders = cleanFolders(c.ScanFolders)
	c.UploadFolders = cleanFolders(c.UploadFolders)
	c.ContentKinds = utils.Dedupe(c.ContentKinds)
	c.CatchAllFolder = strings.Trim(strings.TrimSpace(c.CatchAllFolder), "/")
}

// PostersFolder returns the posters sub-folder of the catch-all folder.
func (c Config) PostersFolder() string {
	return path.Join(c.CatchAllFolder, assetpath.PostersDir)
}

// Folders returns the full scan scope: content folders, the catch-all folder and its posters sub-folder.
func (c Config) Folders() []string {
	folders := append([]string{}, c.ScanFolders...)
	if c.CatchAllFolder != "" {
		folders = append(folders, c.CatchAllFolder, c.PostersFolder())
	}
	return utils.Dedupe(folders)
}

// Pages returns the effective per-folder listing limit.
func (c Config) Pages() int {
	if c.PageSize < MinPageSize {
		return MinPageSize
	}
	return c.PageSize
}

// PosterTimeout returns the poster generation timeout, defaulting to 30s.
func (c Config) PosterTimeout() time.Duration {
	if c.PosterTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.PosterTimeoutSeconds) * time.Second
}

// OperationTimeout returns the bound of a shared audit or cleanup, defaulting to 5m.
func (c Config) OperationTimeout() time.Duration {
	if c.OperationTimeoutSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.OperationTimeoutSeconds) * time.Second
}

// AllowsUpload reports whether folder is an accepted upload folder.
func (c Config) AllowsUpload(folder string) bool {
	for _, f := range c.UploadFolders {
		if f == folder {
			return true
		}
	}
	return false
}

func cleanFolders(folders []string) []string {
	out := make([]string, 0, len(folders))
	for _, f := range folders {
		out = append(out, strings.Trim(strings.TrimSpace(f), "/"))
	}
	return utils.Dedupe(out)
}
