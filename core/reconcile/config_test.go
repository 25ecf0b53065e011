package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Folders(t *testing.T) {
	cfg := Config{
		ScanFolders:    []string{" blog/", "services", "blog", ""},
		CatchAllFolder: "/misc/",
		UploadFolders:  []string{"blog", " misc"},
	}
	cfg.Normalize()

	assert.Equal(t, []string{"blog", "services"}, cfg.ScanFolders)
	assert.Equal(t, "misc", cfg.CatchAllFolder)
	assert.Equal(t, "misc/posters", cfg.PostersFolder())
	assert.Equal(t, []string{"blog", "services", "misc", "misc/posters"}, cfg.Folders())
	assert.True(t, cfg.AllowsUpload("misc"))
	assert.False(t, cfg.AllowsUpload("posters"))
}

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	assert.Equal(t, MinPageSize, cfg.Pages())
	assert.Equal(t, 30*time.Second, cfg.PosterTimeout())
	assert.Equal(t, 5*time.Minute, cfg.OperationTimeout())

	cfg.PageSize = 5000
	cfg.PosterTimeoutSeconds = 5
	cfg.OperationTimeoutSeconds = 60
	assert.Equal(t, 5000, cfg.Pages())
	assert.Equal(t, 5*time.Second, cfg.PosterTimeout())
	assert.Equal(t, time.Minute, cfg.OperationTimeout())
}
