package content

import (
	"context"
	"database/sql"
	"errors"

	"asset-janitor/core/assetpath"
	"asset-janitor/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Collector reads the asset references of every configured content kind.
type Collector struct {
	db         *gorm.DB
	kinds      []Kind
	normalizer *assetpath.Normalizer
	logger     *zap.Logger
}

// NewCollector creates a collector over kinds.
func NewCollector(db *gorm.DB, kinds []Kind, normalizer *assetpath.Normalizer, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		db:         db,
		kinds:      kinds,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Kinds returns the configured content kinds.
func (c *Collector) Kinds() []Kind {
	return c.kinds
}

// CollectReferences returns the ReferenceSet. One query per kind runs
// concurrently; the first failure cancels the others and fails the whole call.
func (c *Collector) CollectReferences(ctx context.Context) (map[string]struct{}, error) {
	if c.db == nil {
		return nil, reconcile.CollectionFailed("database", errors.New("database not connected"))
	}

	values := make([][]sql.NullString, len(c.kinds))
	g, gctx := errgroup.WithContext(ctx)

	for i, kind := range c.kinds {
		g.Go(func() error {
			var rows []sql.NullString
			err := c.db.WithContext(gctx).
				Table(kind.Table).
				Pluck(kind.Column, &rows).Error
			if err != nil {
				return reconcile.CollectionFailed(kind.Name, err)
			}
			values[i] = rows
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.logger.Error("Reference collection failed", zap.Error(err))
		return nil, err
	}

	refs := make(map[string]struct{})
	for i, rows := range values {
		skipped := 0
		for _, v := range rows {
			if !v.Valid {
				continue
			}
			p, ok := c.normalizer.Normalize(v.String)
			if !ok {
				if v.String != "" {
					skipped++
				}
				continue
			}
			refs[p] = struct{}{}
		}
		if skipped > 0 {
			c.logger.Debug("Skipped references outside the bucket",
				zap.String("kind", c.kinds[i].Name),
				zap.Int("count", skipped),
			)
		}
	}

	return refs, nil
}
