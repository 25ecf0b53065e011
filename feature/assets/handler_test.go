package assets

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"asset-janitor/core/reconcile"
	"asset-janitor/core/server"
	"asset-janitor/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testBucket = "assets"

type staticCollector struct {
	refs map[string]struct{}
	err  error
}

func (s staticCollector) CollectReferences(ctx context.Context) (map[string]struct{}, error) {
	return s.refs, s.err
}

type memTracker struct {
	posters map[string]string
}

func (m *memTracker) PosterPathsFor(ctx context.Context, paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		if poster, ok := m.posters[p]; ok {
			out = append(out, poster)
		}
	}
	return out, nil
}

func (m *memTracker) FindPostersReferenced(ctx context.Context) (map[string]struct{}, error) {
	set := make(map[string]struct{}, len(m.posters))
	for _, p := range m.posters {
		set[p] = struct{}{}
	}
	return set, nil
}

func (m *memTracker) DeleteByPrimaryPaths(ctx context.Context, paths []string) (int64, error) {
	var n int64
	for _, p := range paths {
		if _, ok := m.posters[p]; ok {
			delete(m.posters, p)
			n++
		}
	}
	return n, nil
}

func setup(client *mocks.Client, collector reconcile.ReferenceCollector, tracker reconcile.Tracker) *fiber.App {
	spec := reconcile.Spec{
		Collector: collector,
		Storage:   client,
		Bucket:    testBucket,
		Config: reconcile.Config{
			ScanFolders:    []string{"blog"},
			CatchAllFolder: "misc",
			PageSize:       reconcile.MinPageSize,
		},
		StorageTimeout: time.Second,
	}
	if tracker != nil {
		spec.Tracker = tracker
	}
	engine := reconcile.NewEngine(spec, zap.NewNop(), nil)

	app := fiber.New(fiber.Config{ErrorHandler: server.ErrorHandler})
	f := NewFeature(engine, zap.NewNop())
	if err := f.Load(app); err != nil {
		panic(err)
	}
	return app
}

func listing(client *mocks.Client, prefix string, ch <-chan minio.ObjectInfo) {
	client.On("ListObjects", mock.Anything, testBucket, mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
		return o.Prefix == prefix
	})).Return(ch)
}

func readJSON(t *testing.T, r io.Reader, out any) {
	require.NoError(t, json.NewDecoder(r).Decode(out))
}

func TestHandleAudit(t *testing.T) {
	client := new(mocks.Client)
	listing(client, "blog/", mocks.Objects("blog/a.jpg", "blog/b.jpg"))
	listing(client, "misc/", mocks.Objects("misc/c.png"))
	listing(client, "misc/posters/", mocks.Objects())

	collector := staticCollector{refs: map[string]struct{}{"blog/a.jpg": {}, "blog/gone.jpg": {}}}
	app := setup(client, collector, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/storage/audit", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var res reconcile.AuditResult
	readJSON(t, resp.Body, &res)
	assert.Equal(t, reconcile.Summary{Linked: 1, Orphan: 2, Missing: 1}, res.Summary)
	assert.Equal(t, []reconcile.Entry{{File: "blog/gone.jpg", Status: reconcile.StatusMissing}}, res.Missing)
	assert.Empty(t, res.Degraded)
}

func TestHandleAudit_Degraded(t *testing.T) {
	client := new(mocks.Client)
	listing(client, "blog/", mocks.ListError(errors.New("access denied")))
	listing(client, "misc/", mocks.Objects("misc/c.png"))
	listing(client, "misc/posters/", mocks.Objects())

	app := setup(client, staticCollector{refs: map[string]struct{}{}}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/storage/audit", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var res reconcile.AuditResult
	readJSON(t, resp.Body, &res)
	assert.Equal(t, []string{"blog"}, res.Degraded)
	assert.Equal(t, 1, res.Summary.Orphan)
}

func TestHandleAudit_CollectionFailed(t *testing.T) {
	client := new(mocks.Client)
	listing(client, "blog/", mocks.Objects())
	listing(client, "misc/", mocks.Objects())
	listing(client, "misc/posters/", mocks.Objects())

	collector := staticCollector{err: reconcile.CollectionFailed("services", errors.New("table missing"))}
	app := setup(client, collector, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/storage/audit", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body server.ErrorBody
	readJSON(t, resp.Body, &body)
	assert.Equal(t, "CollectionFailed", body.Error)
	assert.Equal(t, "services", body.Source)
}

func TestHandleDelete(t *testing.T) {
	client := new(mocks.Client)
	client.On("RemoveObjects", mock.Anything, testBucket,
		[]string{"portfolio/1.mp4", "portfolio/posters/1.jpg", "misc/posters/legacy.jpg"},
		mock.Anything).Return(nil)

	tracker := &memTracker{posters: map[string]string{"portfolio/1.mp4": "misc/posters/legacy.jpg"}}
	app := setup(client, staticCollector{}, tracker)

	req := httptest.NewRequest("POST", "/admin/storage/delete", strings.NewReader(`{"files":["portfolio/1.mp4"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var res reconcile.DeleteResult
	readJSON(t, resp.Body, &res)
	assert.True(t, res.Success)
	assert.Equal(t, []string{"portfolio/1.mp4", "portfolio/posters/1.jpg", "misc/posters/legacy.jpg"}, res.Deleted)
	assert.Equal(t, int64(1), res.RecordsRemoved)
	client.AssertExpectations(t)
}

func TestHandleDelete_DryRun(t *testing.T) {
	client := new(mocks.Client)
	app := setup(client, staticCollector{}, nil)

	req := httptest.NewRequest("POST", "/admin/storage/delete?dry_run=true", strings.NewReader(`{"files":["blog/a.jpg","blog/a.jpg"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var plan reconcile.DeletePlan
	readJSON(t, resp.Body, &plan)
	assert.Equal(t, []string{"blog/a.jpg"}, plan.Requested)
	assert.Equal(t, []string{"blog/a.jpg", "blog/posters/a.jpg"}, plan.Files)
	client.AssertNotCalled(t, "RemoveObjects", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleDelete_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Empty", `{"files":[]}`},
		{"Missing", `{}`},
		{"UnknownField", `{"files":["blog/a.jpg"],"force":true}`},
		{"Malformed", `{"files":`},
		{"WrongType", `{"files":"blog/a.jpg"}`},
		{"BlankEntry", `{"files":["blog/a.jpg","  "]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.Client)
			app := setup(client, staticCollector{}, nil)

			req := httptest.NewRequest("POST", "/admin/storage/delete", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			var body server.ErrorBody
			readJSON(t, resp.Body, &body)
			assert.Equal(t, "InvalidRequest", body.Error)
			client.AssertNotCalled(t, "RemoveObjects", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandleDelete_StorageFailure(t *testing.T) {
	client := new(mocks.Client)
	client.On("RemoveObjects", mock.Anything, testBucket, mock.Anything, mock.Anything).
		Return(mocks.RemoveErrors(errors.New("access denied"), "blog/a.jpg"))

	app := setup(client, staticCollector{}, nil)

	req := httptest.NewRequest("POST", "/admin/storage/delete", strings.NewReader(`{"files":["blog/a.jpg"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body server.ErrorBody
	readJSON(t, resp.Body, &body)
	assert.Equal(t, "StorageUnavailable", body.Error)
	assert.True(t, body.Retryable)
}

func TestHandleCleanup(t *testing.T) {
	client := new(mocks.Client)
	listing(client, "misc/posters/", mocks.Objects("misc/posters/1.jpg", "misc/posters/2.jpg"))
	client.On("RemoveObjects", mock.Anything, testBucket, []string{"misc/posters/2.jpg"}, mock.Anything).Return(nil)

	tracker := &memTracker{posters: map[string]string{"misc/1.mp4": "misc/posters/1.jpg"}}
	app := setup(client, staticCollector{}, tracker)

	resp, err := app.Test(httptest.NewRequest("POST", "/admin/storage/posters/cleanup", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var res reconcile.CleanupResult
	readJSON(t, resp.Body, &res)
	assert.Equal(t, 1, res.Deleted)
	assert.Equal(t, []string{"misc/posters/2.jpg"}, res.Files)
	client.AssertExpectations(t)
}

func TestHandleCleanup_NoTracker(t *testing.T) {
	app := setup(new(mocks.Client), staticCollector{}, nil)

	resp, err := app.Test(httptest.NewRequest("POST", "/admin/storage/posters/cleanup", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestFeature(t *testing.T) {
	assert.Equal(t, "assets", NewFeature(nil, nil).Name())
	assert.False(t, NewFeature(nil, nil).IsEnabled())
}
