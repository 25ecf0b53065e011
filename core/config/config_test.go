package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "assets", cfg.Storage.Bucket)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, []string{"services", "portfolio", "testimonials", "blog"}, cfg.Assets.ScanFolders)
	assert.Equal(t, "misc", cfg.Assets.CatchAllFolder)
	assert.Equal(t, []string{"blog_posts", "portfolio_items", "services"}, cfg.Assets.ContentKinds)
	assert.Equal(t, 1000, cfg.Assets.PageSize)
	assert.Equal(t, "/storage/v1/object/public/", cfg.Assets.URLMarker)
	assert.Equal(t,
		[]string{"services", "portfolio", "testimonials", "blog", "misc", "misc/posters"},
		cfg.Assets.Folders())
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("ASSETS_SCAN_FOLDERS", " blog , services,blog")
	t.Setenv("ASSETS_CATCH_ALL_FOLDER", "uploads")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, []string{"blog", "services"}, cfg.Assets.ScanFolders)
	assert.Equal(t, "uploads/posters", cfg.Assets.PostersFolder())
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ".env"), []byte("STORAGE_BUCKET=media\nSTORAGE_PUBLIC_URL=https://cdn.example.com\n"), 0o600)
	require.NoError(t, err)
	t.Cleanup(func() {
		os.Unsetenv("STORAGE_BUCKET")
		os.Unsetenv("STORAGE_PUBLIC_URL")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "media", cfg.Storage.Bucket)
	assert.Equal(t, "https://cdn.example.com", cfg.Storage.PublicURL)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"PageSizeTooSmall", "ASSETS_PAGE_SIZE", "10"},
		{"UnknownDriver", "DATABASE_DRIVER", "oracle"},
		{"UnknownLogLevel", "LOG_LEVEL", "loud"},
		{"NonNumericPort", "SERVER_PORT", "http"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := LoadConfig(t.TempDir())
			assert.Error(t, err)
		})
	}
}
