package media

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no record matches a path.
var ErrNotFound = errors.New("media record not found")

// batchSize keeps IN lists under the bind parameter limits of every driver.
const batchSize = 500

// Repository persists MediaRecords. It implements reconcile.Tracker.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AutoMigrate creates or updates the media_records table.
func (r *Repository) AutoMigrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&MediaRecord{}); err != nil {
		return fmt.Errorf("failed to migrate media_records: %w", err)
	}
	return nil
}

// RecordUpload stores the record of an uploaded asset.
func (r *Repository) RecordUpload(ctx context.Context, primaryPath string, posterPath *string, folder, mediaType string) (*MediaRecord, error) {
	rec := &MediaRecord{
		FilePath:   primaryPath,
		PosterPath: posterPath,
		Folder:     folder,
		Type:       mediaType,
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("failed to record upload %s: %w", primaryPath, err)
	}
	return rec, nil
}

// FindByPath returns the record of a primary path.
func (r *Repository) FindByPath(ctx context.Context, primaryPath string) (*MediaRecord, error) {
	var rec MediaRecord
	err := r.db.WithContext(ctx).Where("file_path = ?", primaryPath).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find media record %s: %w", primaryPath, err)
	}
	return &rec, nil
}

// FindByPrimaryPaths returns the records of the given primary paths.
func (r *Repository) FindByPrimaryPaths(ctx context.Context, paths []string) ([]MediaRecord, error) {
	var out []MediaRecord
	for _, batch := range chunk(paths) {
		var recs []MediaRecord
		if err := r.db.WithContext(ctx).Where("file_path IN ?", batch).Find(&recs).Error; err != nil {
			return nil, fmt.Errorf("failed to find media records: %w", err)
		}
		out = append(out, recs...)
	}
	return out, nil
}

// PosterPathsFor returns the non-null poster paths of the given primary paths.
func (r *Repository) PosterPathsFor(ctx context.Context, paths []string) ([]string, error) {
	recs, err := r.FindByPrimaryPaths(ctx, paths)
	if err != nil {
		return nil, err
	}
	posters := make([]string, 0, len(recs))
	for _, rec := range recs {
		if rec.PosterPath != nil && *rec.PosterPath != "" {
			posters = append(posters, *rec.PosterPath)
		}
	}
	return posters, nil
}

// FindPostersReferenced returns every recorded poster path.
func (r *Repository) FindPostersReferenced(ctx context.Context) (map[string]struct{}, error) {
	var posters []string
	err := r.db.WithContext(ctx).
		Model(&MediaRecord{}).
		Where("poster_path IS NOT NULL AND poster_path <> ''").
		Pluck("poster_path", &posters).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load referenced posters: %w", err)
	}

	set := make(map[string]struct{}, len(posters))
	for _, p := range posters {
		set[p] = struct{}{}
	}
	return set, nil
}

// DeleteByPrimaryPaths removes the records of the given primary paths.
func (r *Repository) DeleteByPrimaryPaths(ctx context.Context, paths []string) (int64, error) {
	var total int64
	for _, batch := range chunk(paths) {
		res := r.db.WithContext(ctx).Where("file_path IN ?", batch).Delete(&MediaRecord{})
		if res.Error != nil {
			return total, fmt.Errorf("failed to delete media records: %w", res.Error)
		}
		total += res.RowsAffected
	}
	return total, nil
}

func chunk(paths []string) [][]string {
	var batches [][]string
	for start := 0; start < len(paths); start += batchSize {
		end := start + batchSize
		if end > len(paths) {
			end = len(paths)
		}
		batches = append(batches, paths[start:end])
	}
	return batches
}
