package media

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"asset-janitor/core/assetpath"
	"asset-janitor/core/metrics"
	"asset-janitor/core/reconcile"
	"asset-janitor/core/storage"
	"asset-janitor/feature/media/poster"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// UploadInput is a single uploaded file.
type UploadInput struct {
	Data     []byte `validate:"gt=0"`
	Filename string `validate:"max=255"`
	MimeType string `validate:"required"`
	Folder   string `validate:"required"`
}

// UploadResult is the outcome of an ingest. PosterError is set when the
// primary asset was stored but its poster was not.
type UploadResult struct {
	Record      *MediaRecord
	URL         string
	PosterURL   string
	PosterError error
}

// Options configures a Service.
type Options struct {
	Bucket         string
	Normalizer     *assetpath.Normalizer
	Posters        poster.Generator
	Assets         reconcile.Config
	StorageTimeout time.Duration
}

// Service ingests uploads and records their derived posters.
type Service struct {
	repo     *Repository
	client   storage.Client
	opts     Options
	logger   *zap.Logger
	metrics  *metrics.Metrics
	validate *validator.Validate
	now      func() time.Time
}

// NewService creates a media service.
func NewService(repo *Repository, client storage.Client, opts Options, logger *zap.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		client:   client,
		opts:     opts,
		logger:   logger,
		metrics:  m,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Repository returns the record store.
func (s *Service) Repository() *Repository {
	return s.repo
}

// IngestUpload stores a file under <folder>/<unix millis><ext>, generates and
// stores a poster for videos, and records the upload. A poster failure does
// not fail the upload.
func (s *Service) IngestUpload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, reconcile.InvalidRequest("invalid upload: %v", err)
	}
	if !s.opts.Assets.AllowsUpload(in.Folder) {
		return nil, reconcile.InvalidRequest("folder %q does not accept uploads", in.Folder)
	}

	mediaType, err := typeOf(in.MimeType)
	if err != nil {
		return nil, err
	}

	objectPath := fmt.Sprintf("%s/%d%s", in.Folder, s.now().UnixMilli(), extension(in.Filename, in.MimeType))

	// Uploads never replace an existing key; a same-millisecond collision fails here
	// instead of overwriting an object another record already points at.
	if err := s.upload(ctx, objectPath, in.Data, in.MimeType); err != nil {
		return nil, reconcile.StorageUnavailable("upload", err)
	}

	result := &UploadResult{URL: s.opts.Normalizer.PublicURL(objectPath)}

	var posterPath *string
	if mediaType == TypeVideo {
		p, perr := s.storePoster(ctx, objectPath, in.Data)
		if perr != nil {
			s.metrics.PosterFailed()
			s.logger.Warn("Poster generation failed, keeping upload",
				zap.String("path", objectPath),
				zap.Error(perr),
			)
			result.PosterError = perr
		} else {
			posterPath = &p
			result.PosterURL = s.opts.Normalizer.PublicURL(p)
		}
	}

	rec, err := s.repo.RecordUpload(ctx, objectPath, posterPath, in.Folder, mediaType)
	if err != nil {
		// The object stays in storage untracked and shows up as an orphan in the next audit.
		return nil, reconcile.CollectionFailed("media_records", err)
	}
	result.Record = rec

	s.metrics.UploadRecorded(mediaType)
	s.logger.Info("Upload ingested",
		zap.String("path", objectPath),
		zap.String("type", mediaType),
		zap.Bool("poster", posterPath != nil),
	)
	return result, nil
}

// Lookup returns the record of a primary path.
func (s *Service) Lookup(ctx context.Context, primaryPath string) (*MediaRecord, error) {
	return s.repo.FindByPath(ctx, primaryPath)
}

func (s *Service) storePoster(ctx context.Context, objectPath string, video []byte) (string, error) {
	if s.opts.Posters == nil {
		return "", reconcile.DerivedAssetGenerationFailed("poster", errors.New("poster generator not configured"))
	}

	genCtx, cancel := context.WithTimeout(ctx, s.opts.Assets.PosterTimeout())
	defer cancel()

	img, err := s.opts.Posters.Generate(genCtx, video)
	if err != nil {
		return "", reconcile.DerivedAssetGenerationFailed("ffmpeg", err)
	}

	posterPath := assetpath.GuessPoster(objectPath)
	if err := s.upload(ctx, posterPath, img, "image/jpeg"); err != nil {
		return "", reconcile.DerivedAssetGenerationFailed("poster_upload", err)
	}
	return posterPath, nil
}

func (s *Service) upload(ctx context.Context, objectPath string, data []byte, contentType string) error {
	if s.opts.StorageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.StorageTimeout)
		defer cancel()
	}
	return storage.Upload(ctx, s.client, s.opts.Bucket, objectPath, data, contentType)
}

func typeOf(mimeType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return "", reconcile.InvalidRequest("invalid mime type %q", mimeType)
	}
	switch {
	case strings.HasPrefix(mediaType, "image/"):
		return TypeImage, nil
	case strings.HasPrefix(mediaType, "video/"):
		return TypeVideo, nil
	default:
		return "", reconcile.InvalidRequest("unsupported media type %q", mediaType)
	}
}

var preferredExtensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"image/svg+xml":   ".svg",
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/quicktime": ".mov",
}

// extension keeps the original file extension, falling back to the mime type.
func extension(filename, mimeType string) string {
	if ext := path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))); ext != "" && ext != "." {
		return ext
	}
	mediaType, _, _ := mime.ParseMediaType(mimeType)
	if ext, ok := preferredExtensions[mediaType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
