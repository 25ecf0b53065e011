package assetpath_test

import (
	"testing"

	"asset-janitor/core/assetpath"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	n := assetpath.New("https://cdn.example.com", "assets", "")

	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"PublicURL", "https://cdn.example.com/storage/v1/object/public/assets/blog/1.jpg", "blog/1.jpg", true},
		{"ForeignHostSameMarker", "https://other.host/storage/v1/object/public/assets/services/b.png", "services/b.png", true},
		{"BareKey", "blog/1.jpg", "blog/1.jpg", true},
		{"BareKeyWithBucket", "assets/portfolio/9.mp4", "portfolio/9.mp4", true},
		{"NestedKey", "misc/posters/1.jpg", "misc/posters/1.jpg", true},
		{"KeepsCase", "Blog/Photo.JPG", "Blog/Photo.JPG", true},
		{"StripsOnlyLeadingBucket", "blog/assets/1.jpg", "blog/assets/1.jpg", true},
		{"Empty", "", "", false},
		{"Whitespace", "   ", "", false},
		{"ForeignURL", "https://images.example.com/blog/1.jpg", "", false},
		{"NoFolder", "1.jpg", "", false},
		{"BucketOnly", "https://cdn.example.com/storage/v1/object/public/assets/1.jpg", "", false},
		{"AbsolutePath", "/blog/1.jpg", "", false},
		{"FolderOnly", "blog/", "", false},
		{"DoubleBucket", "assets/assets/1.jpg", "", false},
		{"DataURI", "data:image/png;base64,iVBORw0KGgo/AAA", "", false},
		{"BlobURI", "blob:abc/123", "", false},
		{"SchemelessHost", "www.example.com/img.jpg", "", false},
		{"SchemelessHostNested", "cdn.example.com/blog/1.jpg", "", false},
		{"HostWithPort", "localhost:9000/assets/blog/1.jpg", "", false},
		{"MarkerThenHostShape", "https://cdn.example.com/storage/v1/object/public/assets/www.example.com/1.jpg", "", false},
		{"DottedFilename", "blog/my.photo.v2.jpg", "blog/my.photo.v2.jpg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.Normalize(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := assetpath.New("https://cdn.example.com", "assets", "")

	inputs := []string{
		"https://cdn.example.com/storage/v1/object/public/assets/blog/1.jpg",
		"assets/blog/1.jpg",
		"blog/1.jpg",
		"assets/assets/1.jpg",
		"https://cdn.example.com/storage/v1/object/public/assets/assets/blog/1.jpg",
		"misc/posters/2.jpg",
		"data:image/png;base64,iVBORw0KGgo/AAA",
		"www.example.com/img.jpg",
		"",
		"nonsense",
	}

	for _, in := range inputs {
		first, ok := n.Normalize(in)
		if !ok {
			continue
		}
		second, ok2 := n.Normalize(first)
		assert.True(t, ok2, "normalized value %q must normalize again", first)
		assert.Equal(t, first, second)
	}
}

func TestNormalizePtr(t *testing.T) {
	n := assetpath.New("", "assets", "")

	_, ok := n.NormalizePtr(nil)
	assert.False(t, ok)

	raw := "assets/blog/1.jpg"
	got, ok := n.NormalizePtr(&raw)
	assert.True(t, ok)
	assert.Equal(t, "blog/1.jpg", got)
}

func TestPublicURL_RoundTrip(t *testing.T) {
	n := assetpath.New("https://cdn.example.com/", "assets", "")

	url := n.PublicURL("blog/1.jpg")
	assert.Equal(t, "https://cdn.example.com/storage/v1/object/public/assets/blog/1.jpg", url)

	got, ok := n.Normalize(url)
	assert.True(t, ok)
	assert.Equal(t, "blog/1.jpg", got)
}

func TestGuessPoster(t *testing.T) {
	assert.Equal(t, "portfolio/posters/12345.jpg", assetpath.GuessPoster("portfolio/12345.mp4"))
	assert.Equal(t, "misc/posters/clip.jpg", assetpath.GuessPoster("misc/clip.webm"))
	assert.Equal(t, "blog/posters/noext.jpg", assetpath.GuessPoster("blog/noext"))
	assert.Equal(t, "posters/top.jpg", assetpath.GuessPoster("top.mov"))
}

func TestFolder(t *testing.T) {
	assert.Equal(t, "blog", assetpath.Folder("blog/1.jpg"))
	assert.Equal(t, "misc", assetpath.Folder("misc/posters/1.jpg"))
	assert.Equal(t, "", assetpath.Folder("1.jpg"))
}
