// Package reconcile compares the asset paths referenced by content with the
// objects present in the storage bucket, and garbage-collects what is no longer
// referenced.
//
// # Sources
//
// Two independently built sets are compared on every call:
//   - ReferenceSet: paths referenced by content rows, from a ReferenceCollector.
//   - StorageSet: paths listed from a fixed list of scan folders by the StorageLister.
//
// Both are recomputed per call and never cached. Concurrent audits, and concurrent
// poster cleanups, are coalesced into a single in-flight execution.
//
// # Classification
//
//   - linked: in both sets
//   - orphan: in storage only
//   - missing: referenced only
//
// A folder whose listing fails contributes nothing and is reported in
// AuditResult.Degraded. Objects in such a folder are absent from the audit, they
// are never reported as orphans.
//
// # Deletion
//
// DeleteFiles expands the requested paths with their guessed poster paths
// (folder/name.ext -> folder/posters/name.jpg) and the poster paths recorded by
// the Tracker, removes the whole set in one bulk storage call, and only then
// drops the media records. CleanupOrphanPosters removes posters in the catch-all
// posters folder that no media record references.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(reconcile.Spec{
//	    Collector:      collector,
//	    Tracker:        mediaRepo,
//	    Storage:        client,
//	    Bucket:         cfg.Storage.Bucket,
//	    Config:         cfg.Assets,
//	    StorageTimeout: cfg.Storage.Timeout(),
//	}, logger, metrics)
//
//	result, err := engine.Audit(ctx)
//	if errors.Is(err, reconcile.ErrCollectionFailed) {
//	    // content database unavailable
//	}
package reconcile
