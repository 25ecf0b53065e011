package reconcile

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"asset-janitor/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const testBucket = "assets"

type fakeCollector struct {
	refs    map[string]struct{}
	err     error
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (f *fakeCollector) CollectReferences(ctx context.Context) (map[string]struct{}, error) {
	f.calls.Add(1)
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.refs, f.err
}

type fakeTracker struct {
	mu         sync.Mutex
	posters    map[string][]string
	referenced map[string]struct{}
	findErr    error
	deleteErr  error
	deleted    []string
	lookups    int
}

func (f *fakeTracker) PosterPathsFor(ctx context.Context, primaryPaths []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []string
	for _, p := range primaryPaths {
		out = append(out, f.posters[p]...)
	}
	return out, nil
}

func (f *fakeTracker) FindPostersReferenced(ctx context.Context) (map[string]struct{}, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.referenced, nil
}

func (f *fakeTracker) DeleteByPrimaryPaths(ctx context.Context, primaryPaths []string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.deleted = append(f.deleted, primaryPaths...)
	return int64(len(primaryPaths)), nil
}

func set(paths ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

func testConfig(folders ...string) Config {
	return Config{
		ScanFolders:    folders,
		CatchAllFolder: "misc",
		PageSize:       MinPageSize,
	}
}

func newTestEngine(client *mocks.Client, collector ReferenceCollector, tracker Tracker, cfg Config) *Engine {
	spec := Spec{
		Collector:      collector,
		Storage:        client,
		Bucket:         testBucket,
		Config:         cfg,
		StorageTimeout: time.Second,
	}
	if tracker != nil {
		spec.Tracker = tracker
	}
	return NewEngine(spec, zap.NewNop(), nil)
}

func prefixIs(prefix string) any {
	return mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
		return o.Prefix == prefix
	})
}

// expectList registers the listing of one folder.
func expectList(client *mocks.Client, prefix string, ch <-chan minio.ObjectInfo) *mock.Call {
	return client.On("ListObjects", mock.Anything, testBucket, prefixIs(prefix)).Return(ch)
}

// expectEmpty registers empty listings for prefixes.
func expectEmpty(client *mocks.Client, prefixes ...string) {
	for _, p := range prefixes {
		expectList(client, p, mocks.Objects())
	}
}

// waitForDeadline makes a storage call block until its context is done.
func waitForDeadline(args mock.Arguments) {
	<-args.Get(0).(context.Context).Done()
}
