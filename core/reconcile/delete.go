package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"asset-janitor/core/assetpath"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const sourceRemove = "remove"

// PlanDelete computes the deletion set for paths without touching storage or records.
// The set is the requested paths, their guessed poster paths and their recorded poster paths.
func (e *Engine) PlanDelete(ctx context.Context, paths []string) (*DeletePlan, error) {
	if len(paths) == 0 {
		return nil, InvalidRequest("no files provided")
	}

	plan := &DeletePlan{}
	seen := make(map[string]struct{}, len(paths)*2)
	for i, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, InvalidRequest("file %d is empty", i)
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		plan.Requested = append(plan.Requested, p)
	}

	derived := make([]string, 0, len(plan.Requested))
	for _, p := range plan.Requested {
		derived = append(derived, assetpath.GuessPoster(p))
	}

	if e.spec.Tracker != nil {
		recorded, err := e.spec.Tracker.PosterPathsFor(ctx, plan.Requested)
		if err != nil {
			return nil, CollectionFailed("media_records", err)
		}
		derived = append(derived, recorded...)
	}

	for _, p := range derived {
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		plan.Derived = append(plan.Derived, p)
	}

	plan.Files = make([]string, 0, len(plan.Requested)+len(plan.Derived))
	plan.Files = append(plan.Files, plan.Requested...)
	plan.Files = append(plan.Files, plan.Derived...)

	return plan, nil
}

// DeleteFiles removes paths and their derived posters in one bulk storage call,
// then drops the media records of the requested paths. Records are only touched
// once storage reports success.
func (e *Engine) DeleteFiles(ctx context.Context, paths []string) (res *DeleteResult, err error) {
	start := time.Now()
	defer func() { e.metrics.ObserveOperation("delete", start, err) }()

	plan, err := e.PlanDelete(ctx, paths)
	if err != nil {
		return nil, err
	}

	if err := e.remove(ctx, plan.Files); err != nil {
		e.logger.Error("Bulk remove failed", zap.Int("files", len(plan.Files)), zap.Error(err))
		return nil, err
	}
	e.metrics.ObjectsDeleted("delete", len(plan.Files))

	res = &DeleteResult{Success: true, Deleted: plan.Files}

	if e.spec.Tracker != nil {
		removed, terr := e.spec.Tracker.DeleteByPrimaryPaths(ctx, plan.Requested)
		if terr != nil {
			// The objects are gone; a stale record only names already deleted paths.
			e.logger.Warn("Media records not removed after delete",
				zap.Strings("paths", plan.Requested),
				zap.Error(terr),
			)
		}
		res.RecordsRemoved = removed
	}

	e.logger.Info("Files deleted",
		zap.Int("requested", len(plan.Requested)),
		zap.Int("deleted", len(plan.Files)),
		zap.Int64("records", res.RecordsRemoved),
	)
	return res, nil
}

// CleanupOrphanPosters removes every object in the catch-all posters folder that
// no media record references. Concurrent cleanups share one execution.
func (e *Engine) CleanupOrphanPosters(ctx context.Context) (*CleanupResult, error) {
	start := time.Now()
	res, shared, err := do(ctx, &e.flights, flightCleanup, e.cleanupOrphanPosters)
	if !shared {
		e.metrics.ObserveOperation(flightCleanup, start, err)
	}
	return res, err
}

// PlanCleanup lists the orphan posters CleanupOrphanPosters would remove.
func (e *Engine) PlanCleanup(ctx context.Context) ([]string, error) {
	folder := e.spec.Config.PostersFolder()

	if e.spec.Tracker == nil {
		return nil, CollectionFailed("media_records", errors.New("derived asset tracker not configured"))
	}

	// The listing drives deletion, so a failure here is not skipped like in an audit.
	listed, err := e.lister.ListFolder(ctx, folder)
	if err != nil {
		if _, ok := AsError(err); ok {
			return nil, err
		}
		return nil, StorageUnavailable(folder, err)
	}

	referenced, err := e.spec.Tracker.FindPostersReferenced(ctx)
	if err != nil {
		return nil, CollectionFailed("media_records", err)
	}

	orphans := make([]string, 0)
	for _, p := range listed {
		if _, ok := referenced[p]; !ok {
			orphans = append(orphans, p)
		}
	}
	sort.Strings(orphans)
	return orphans, nil
}

func (e *Engine) cleanupOrphanPosters(ctx context.Context) (*CleanupResult, error) {
	orphans, err := e.PlanCleanup(ctx)
	if err != nil {
		return nil, err
	}

	if len(orphans) == 0 {
		return &CleanupResult{Deleted: 0, Files: []string{}}, nil
	}

	if err := e.remove(ctx, orphans); err != nil {
		e.logger.Error("Orphan poster removal failed", zap.Int("files", len(orphans)), zap.Error(err))
		return nil, err
	}
	e.metrics.ObjectsDeleted("cleanup", len(orphans))

	e.logger.Info("Orphan posters removed", zap.Int("deleted", len(orphans)))
	return &CleanupResult{Deleted: len(orphans), Files: orphans}, nil
}

// remove deletes files in a single batch call bounded by the storage timeout.
func (e *Engine) remove(ctx context.Context, files []string) error {
	if e.spec.StorageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.spec.StorageTimeout)
		defer cancel()
	}

	objectsCh := make(chan minio.ObjectInfo, len(files))
	for _, f := range files {
		objectsCh <- minio.ObjectInfo{Key: f}
	}
	close(objectsCh)

	errorCh := e.spec.Storage.RemoveObjects(ctx, e.spec.Bucket, objectsCh, minio.RemoveObjectsOptions{})

	var failures []string
	for rerr := range errorCh {
		if rerr.Err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", rerr.ObjectName, rerr.Err))
		}
	}

	if err := ctx.Err(); err != nil {
		return StorageUnavailable(sourceRemove, err)
	}
	if len(failures) > 0 {
		return StorageUnavailable(sourceRemove, fmt.Errorf("batch delete had %d errors: %v", len(failures), failures))
	}
	return nil
}
