package integrity

import (
	"context"
	"fmt"

	"asset-janitor/core/storage"
	"asset-janitor/feature/content"
	"asset-janitor/feature/integrity/checks"
	"asset-janitor/feature/media"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	folders []string
	db      *gorm.DB
	tables  []checks.TableExpectation
	logger  *zap.Logger
}

// NewService creates a new integrity service. folders are the storage folders
// that must exist; tables are the schema expectations.
func NewService(client storage.Client, bucket string, folders []string, db *gorm.DB, tables []checks.TableExpectation, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		bucket:  bucket,
		folders: folders,
		db:      db,
		tables:  tables,
		logger:  logger,
	}
}

// SchemaExpectations returns the tables the engine reads and writes: the
// media_records table and the reference column of every content kind.
func SchemaExpectations(kinds []content.Kind) ([]checks.TableExpectation, error) {
	records, err := checks.ModelExpectation(&media.MediaRecord{})
	if err != nil {
		return nil, fmt.Errorf("media_records: %w", err)
	}

	tables := []checks.TableExpectation{records}
	for _, k := range kinds {
		tables = append(tables, checks.TableExpectation{
			Table:   k.Table,
			Columns: []checks.ColumnExpectation{{Name: k.Column}},
		})
	}
	return tables, nil
}

// Folders returns the folders the structure check expects.
func (s *Service) Folders() []string {
	return s.folders
}

// CheckStructure returns the missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, s.folders)
}

// FixStructure creates the bucket if needed and the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckSchema compares the database with the expected tables.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, s.tables)
}

// CheckAll runs every check. A failing check is reported in place and does not stop the others.
func (s *Service) CheckAll(ctx context.Context) map[string]interface{} {
	report := make(map[string]interface{})

	if missing, err := s.CheckStructure(ctx); err != nil {
		report["structure"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["structure"] = map[string]interface{}{"status": "ok", "missing": missing}
	}

	if schemaReport, err := s.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schemaReport
	}

	return report
}
