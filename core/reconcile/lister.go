package reconcile

import (
	"context"
	"strings"
	"time"

	"asset-janitor/core/metrics"
	"asset-janitor/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// StorageLister builds the StorageSet from a fixed list of folders.
type StorageLister struct {
	client   storage.Client
	bucket   string
	folders  []string
	pageSize int
	timeout  time.Duration
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewStorageLister creates a lister over folders. Page sizes below MinPageSize are raised.
func NewStorageLister(client storage.Client, bucket string, folders []string, pageSize int, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) *StorageLister {
	if pageSize < MinPageSize {
		pageSize = MinPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorageLister{
		client:   client,
		bucket:   bucket,
		folders:  folders,
		pageSize: pageSize,
		timeout:  timeout,
		logger:   logger,
		metrics:  m,
	}
}

// Folders returns the scan scope.
func (l *StorageLister) Folders() []string {
	return l.folders
}

// ListStorage lists every folder in order. A folder that fails is recorded in
// Degraded and contributes nothing. An error is only returned when ctx ends.
func (l *StorageLister) ListStorage(ctx context.Context) (*ListResult, error) {
	result := &ListResult{Paths: make(map[string]struct{})}

	for _, folder := range l.folders {
		if err := ctx.Err(); err != nil {
			return nil, StorageUnavailable(folder, err)
		}

		paths, err := l.ListFolder(ctx, folder)
		if err != nil {
			if ctx.Err() != nil {
				return nil, StorageUnavailable(folder, ctx.Err())
			}
			l.logger.Warn("Folder listing failed, skipping",
				zap.String("folder", folder),
				zap.Error(err),
			)
			l.metrics.FolderDegraded(folder)
			result.Degraded = append(result.Degraded, folder)
			continue
		}

		for _, p := range paths {
			result.Paths[p] = struct{}{}
		}
	}

	return result, nil
}

// ListFolder returns the paths of the objects directly under folder, up to the page size.
func (l *StorageLister) ListFolder(ctx context.Context, folder string) ([]string, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	// Cancelling stops the listing goroutine once the page is full.
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	prefix := strings.Trim(folder, "/") + "/"
	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
		MaxKeys:   l.pageSize,
	}

	var (
		paths []string
		seen  int
	)
	for obj := range l.client.ListObjects(ctx, l.bucket, opts) {
		if obj.Err != nil {
			return nil, StorageUnavailable(folder, obj.Err)
		}

		seen++
		if name, ok := entryName(prefix, obj.Key); ok {
			paths = append(paths, prefix+name)
		}
		if seen >= l.pageSize {
			return paths, nil
		}
	}

	// A channel closed early by a deadline or a cancelled caller is not a complete page.
	if err := ctx.Err(); err != nil {
		return nil, StorageUnavailable(folder, err)
	}
	return paths, nil
}

// entryName returns the file name of key relative to prefix. Directory markers
// and nested keys are not usable names.
func entryName(prefix, key string) (string, bool) {
	if !strings.HasPrefix(key, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(key, prefix)
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}
