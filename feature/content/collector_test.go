package content

import (
	"context"
	"errors"
	"testing"

	"asset-janitor/core/assetpath"
	"asset-janitor/core/database"
	"asset-janitor/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const publicBase = "https://project.supabase.co/storage/v1/object/public/assets/"

func setupContentDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	for _, stmt := range []string{
		"CREATE TABLE blog_posts (id INTEGER PRIMARY KEY, image_url TEXT, published INTEGER)",
		"CREATE TABLE portfolio_items (id INTEGER PRIMARY KEY, image_url TEXT, published INTEGER)",
		"CREATE TABLE services (id INTEGER PRIMARY KEY, image_url TEXT, published INTEGER)",
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func insert(t *testing.T, db *gorm.DB, table string, url any, published bool) {
	require.NoError(t, db.Exec("INSERT INTO "+table+" (image_url, published) VALUES (?, ?)", url, published).Error)
}

func TestCollector_CollectReferences(t *testing.T) {
	db := setupContentDB(t)

	insert(t, db, "blog_posts", publicBase+"blog/a.jpg", true)
	insert(t, db, "blog_posts", publicBase+"blog/a.jpg", false)
	insert(t, db, "blog_posts", nil, true)
	insert(t, db, "blog_posts", "", true)
	insert(t, db, "portfolio_items", "assets/portfolio/9.mp4", false)
	insert(t, db, "portfolio_items", "https://images.unsplash.com/photo.jpg", true)
	insert(t, db, "services", "services/b.png", true)

	collector := NewCollector(db, []Kind{BlogPosts, PortfolioItems, Services}, assetpath.New("", "assets", ""), zap.NewNop())

	refs, err := collector.CollectReferences(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]struct{}{
		"blog/a.jpg":      {},
		"portfolio/9.mp4": {},
		"services/b.png":  {},
	}, refs)
}

func TestCollector_MissingTable(t *testing.T) {
	db := setupContentDB(t)

	collector := NewCollector(db, []Kind{BlogPosts, Testimonials}, assetpath.New("", "assets", ""), zap.NewNop())

	_, err := collector.CollectReferences(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, &reconcile.Error{Kind: reconcile.KindCollectionFailed, Source: "testimonials"})
}

func TestCollector_QueryError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT `image_url` FROM `services`").WillReturnError(errors.New("connection refused"))

	collector := NewCollector(db, []Kind{Services}, assetpath.New("", "assets", ""), nil)

	refs, err := collector.CollectReferences(context.Background())
	assert.Nil(t, refs)
	assert.ErrorIs(t, err, reconcile.ErrCollectionFailed)

	e, ok := reconcile.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "services", e.Source)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollector_NoDatabase(t *testing.T) {
	collector := NewCollector(nil, []Kind{Services}, assetpath.New("", "assets", ""), nil)

	_, err := collector.CollectReferences(context.Background())
	assert.ErrorIs(t, err, reconcile.ErrCollectionFailed)
}
