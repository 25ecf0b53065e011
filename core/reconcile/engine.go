package reconcile

import (
	"context"
	"sort"
	"sync"
	"time"

	"asset-janitor/core/metrics"

	"go.uber.org/zap"
)

// Engine classifies and garbage-collects bucket objects against content references.
type Engine struct {
	spec    Spec
	lister  *StorageLister
	logger  *zap.Logger
	metrics *metrics.Metrics
	flights flights
}

// NewEngine creates an engine over the collaborators in spec.
func NewEngine(spec Spec, logger *zap.Logger, m *metrics.Metrics) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		spec:    spec,
		lister:  NewStorageLister(spec.Storage, spec.Bucket, spec.Config.Folders(), spec.Config.Pages(), spec.StorageTimeout, logger, m),
		logger:  logger,
		metrics: m,
		flights: flights{limit: spec.Config.OperationTimeout()},
	}
}

// Lister returns the storage lister used by the engine.
func (e *Engine) Lister() *StorageLister {
	return e.lister
}

// Audit classifies every path of the StorageSet and the ReferenceSet as linked,
// orphan or missing. Concurrent audits share one execution.
func (e *Engine) Audit(ctx context.Context) (*AuditResult, error) {
	start := time.Now()
	res, shared, err := do(ctx, &e.flights, flightAudit, e.audit)
	if !shared {
		e.metrics.ObserveOperation(flightAudit, start, err)
	}
	return res, err
}

func (e *Engine) audit(ctx context.Context) (*AuditResult, error) {
	var (
		refs    map[string]struct{}
		listing *ListResult
		refErr  error
		listErr error
		wg      sync.WaitGroup
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		refs, refErr = e.spec.Collector.CollectReferences(ctx)
	}()

	go func() {
		defer wg.Done()
		listing, listErr = e.lister.ListStorage(ctx)
	}()

	wg.Wait()

	if refErr != nil {
		if _, ok := AsError(refErr); ok {
			return nil, refErr
		}
		return nil, CollectionFailed("references", refErr)
	}
	if listErr != nil {
		return nil, listErr
	}

	result := Classify(refs, listing.Paths)
	result.Degraded = listing.Degraded

	e.metrics.RecordAudit(result.Summary.Linked, result.Summary.Orphan, result.Summary.Missing)
	e.logger.Info("Audit completed",
		zap.Int("linked", result.Summary.Linked),
		zap.Int("orphan", result.Summary.Orphan),
		zap.Int("missing", result.Summary.Missing),
		zap.Strings("degraded", result.Degraded),
	)

	return result, nil
}

// Classify builds an audit result from a ReferenceSet and a StorageSet.
func Classify(refs, stored map[string]struct{}) *AuditResult {
	result := &AuditResult{
		Linked:  []Entry{},
		Orphan:  []Entry{},
		Missing: []Entry{},
	}

	for _, file := range sortedKeys(stored) {
		if _, ok := refs[file]; ok {
			result.Linked = append(result.Linked, Entry{File: file, Status: StatusLinked})
		} else {
			result.Orphan = append(result.Orphan, Entry{File: file, Status: StatusOrphan})
		}
	}

	for _, file := range sortedKeys(refs) {
		if _, ok := stored[file]; !ok {
			result.Missing = append(result.Missing, Entry{File: file, Status: StatusMissing})
		}
	}

	result.Summary = Summary{
		Linked:  len(result.Linked),
		Orphan:  len(result.Orphan),
		Missing: len(result.Missing),
	}
	return result
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
