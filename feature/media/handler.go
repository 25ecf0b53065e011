package media

import (
	"errors"
	"io"

	"asset-janitor/core/logger"
	"asset-janitor/core/reconcile"
	"asset-janitor/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UploadResponse is the body returned by the upload endpoint.
type UploadResponse struct {
	URL         string       `json:"url"`
	PosterURL   string       `json:"poster_url,omitempty"`
	Record      *MediaRecord `json:"record"`
	PosterError string       `json:"poster_error,omitempty"`
}

// Handler handles HTTP requests for media ingest.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the media routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/admin/media")
	group.Post("/upload", h.HandleUpload)
	group.Get("/", h.HandleLookup)
}

// HandleUpload stores an uploaded image or video.
// @Summary Upload Media
// @Description Stores a file under <folder>/<unix millis><ext>. Videos get a poster; a poster failure is reported in poster_error and does not fail the upload.
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image or video"
// @Param folder formData string true "Target folder"
// @Success 200 {object} UploadResponse "Stored asset"
// @Failure 400 {object} server.ErrorBody "Invalid upload"
// @Failure 500 {object} server.ErrorBody "Storage or database failure"
// @Router /admin/media/upload [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	fh, err := c.FormFile("file")
	if err != nil {
		return server.WriteError(c, reconcile.InvalidRequest("no file received"))
	}

	f, err := fh.Open()
	if err != nil {
		return server.WriteError(c, reconcile.InvalidRequest("unreadable file: %v", err))
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return server.WriteError(c, reconcile.InvalidRequest("unreadable file: %v", err))
	}

	res, err := h.service.IngestUpload(c.Context(), UploadInput{
		Data:     data,
		Filename: fh.Filename,
		MimeType: fh.Header.Get(fiber.HeaderContentType),
		Folder:   c.FormValue("folder"),
	})
	if err != nil {
		l.Error("Upload failed", zap.String("filename", fh.Filename), zap.Error(err))
		return server.WriteError(c, err)
	}

	body := UploadResponse{
		URL:       res.URL,
		PosterURL: res.PosterURL,
		Record:    res.Record,
	}
	if res.PosterError != nil {
		body.PosterError = res.PosterError.Error()
	}
	return c.JSON(body)
}

// HandleLookup returns the media record of a stored path.
// @Summary Get Media Record
// @Description Returns the media record bound to a primary asset path.
// @Tags media
// @Produce json
// @Param path query string true "Asset path"
// @Success 200 {object} MediaRecord "Media record"
// @Failure 400 {object} server.ErrorBody "Missing path"
// @Failure 404 {object} map[string]string "Not found"
// @Router /admin/media [get]
func (h *Handler) HandleLookup(c *fiber.Ctx) error {
	p := c.Query("path")
	if p == "" {
		return server.WriteError(c, reconcile.InvalidRequest("path is required"))
	}

	rec, err := h.service.Lookup(c.Context(), p)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "media record not found"})
	}
	if err != nil {
		return server.WriteError(c, reconcile.CollectionFailed("media_records", err))
	}
	return c.JSON(rec)
}
