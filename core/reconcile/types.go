package reconcile

import (
	"context"
	"time"

	"asset-janitor/core/storage"
)

// Status is the classification of an asset path.
type Status string

const (
	// StatusLinked is a storage object with a matching content reference.
	StatusLinked Status = "linked"
	// StatusOrphan is a storage object nothing references.
	StatusOrphan Status = "orphan"
	// StatusMissing is a content reference with no storage object.
	StatusMissing Status = "missing"
)

// Entry is one classified asset path.
type Entry struct {
	File   string `json:"file"`
	Status Status `json:"status"`
}

// Summary holds the per-status counts of an audit.
type Summary struct {
	Linked  int `json:"linked"`
	Orphan  int `json:"orphan"`
	Missing int `json:"missing"`
}

// AuditResult is the output of an audit. Lists are sorted by path.
type AuditResult struct {
	Summary Summary `json:"summary"`
	Linked  []Entry `json:"linked"`
	Orphan  []Entry `json:"orphan"`
	Missing []Entry `json:"missing"`

	// Degraded lists scan folders whose listing failed and contributed nothing.
	Degraded []string `json:"degraded,omitempty"`
}

// DeletePlan is the deletion set computed for a delete request.
type DeletePlan struct {
	// Requested are the caller's paths, deduplicated, in request order.
	Requested []string `json:"requested"`
	// Derived are poster paths added by the cascade (guessed or recorded).
	Derived []string `json:"derived"`
	// Files is Requested followed by Derived.
	Files []string `json:"files"`
}

// DeleteResult is the output of a delete.
type DeleteResult struct {
	Success bool     `json:"success"`
	Deleted []string `json:"deleted"`
	// RecordsRemoved counts media records dropped after the objects were removed.
	RecordsRemoved int64 `json:"records_removed"`
}

// CleanupResult is the output of an orphan poster cleanup.
type CleanupResult struct {
	Deleted int      `json:"deleted"`
	Files   []string `json:"files"`
}

// ListResult is a storage snapshot.
type ListResult struct {
	Paths    map[string]struct{}
	Degraded []string
}

// ReferenceCollector returns every asset path referenced by content.
type ReferenceCollector interface {
	CollectReferences(ctx context.Context) (map[string]struct{}, error)
}

// Tracker exposes the derived asset records the engine cascades through.
type Tracker interface {
	// PosterPathsFor returns the recorded poster paths of the given primary paths.
	PosterPathsFor(ctx context.Context, primaryPaths []string) ([]string, error)
	// FindPostersReferenced returns every recorded poster path.
	FindPostersReferenced(ctx context.Context) (map[string]struct{}, error)
	// DeleteByPrimaryPaths removes the records of the given primary paths.
	DeleteByPrimaryPaths(ctx context.Context, primaryPaths []string) (int64, error)
}

// Spec bundles the collaborators of an Engine.
type Spec struct {
	// Collector supplies the ReferenceSet.
	Collector ReferenceCollector

	// Tracker supplies derived asset records. With a nil tracker the delete
	// cascade is limited to guessed poster paths and poster cleanup is refused.
	Tracker Tracker

	// Storage is the bucket client.
	Storage storage.Client

	// Bucket is the bucket holding content assets.
	Bucket string

	// Config is the scan scope.
	Config Config

	// StorageTimeout bounds every storage call.
	StorageTimeout time.Duration
}
