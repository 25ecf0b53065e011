package assets

import (
	"bytes"
	"encoding/json"

	"asset-janitor/core/logger"
	"asset-janitor/core/reconcile"
	"asset-janitor/core/server"
	"asset-janitor/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DeleteRequest is the body of a delete call.
type DeleteRequest struct {
	Files []string `json:"files"`
}

// Handler exposes the reconciliation engine over HTTP.
type Handler struct {
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(engine *reconcile.Engine, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{engine: engine, logger: logger}
}

// RegisterRoutes registers the storage maintenance routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/admin/storage")
	group.Get("/audit", h.HandleAudit)
	group.Post("/delete", h.HandleDelete)
	group.Post("/posters/cleanup", h.HandleCleanup)
}

// HandleAudit classifies every stored and referenced asset.
// @Summary Audit Storage
// @Description Lists linked, orphan and missing assets. Folders whose listing failed are reported in degraded.
// @Tags storage
// @Produce json
// @Success 200 {object} reconcile.AuditResult "Audit result"
// @Failure 500 {object} server.ErrorBody "Collection failed"
// @Failure 503 {object} server.ErrorBody "Storage timeout"
// @Router /admin/storage/audit [get]
func (h *Handler) HandleAudit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	res, err := h.engine.Audit(c.UserContext())
	if err != nil {
		l.Error("Audit failed", zap.Error(err))
		return server.WriteError(c, err)
	}
	if len(res.Degraded) > 0 {
		l.Warn("Audit completed with degraded folders", zap.Strings("folders", res.Degraded))
	}
	return c.JSON(res)
}

// HandleDelete removes files and their derived posters.
// @Summary Delete Files
// @Description Deletes the given paths, their guessed posters and their recorded posters in one call. With dry_run the deletion set is returned and nothing is removed.
// @Tags storage
// @Accept json
// @Produce json
// @Param request body DeleteRequest true "Files to delete"
// @Param dry_run query bool false "Only compute the deletion set"
// @Success 200 {object} reconcile.DeleteResult "Deleted files"
// @Failure 400 {object} server.ErrorBody "Invalid request"
// @Failure 500 {object} server.ErrorBody "Storage failure"
// @Router /admin/storage/delete [post]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req DeleteRequest
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return server.WriteError(c, reconcile.InvalidRequest("invalid request body: %v", err))
	}

	if utils.ToBool(c.Query("dry_run")) {
		plan, err := h.engine.PlanDelete(c.UserContext(), req.Files)
		if err != nil {
			return server.WriteError(c, err)
		}
		return c.JSON(plan)
	}

	res, err := h.engine.DeleteFiles(c.UserContext(), req.Files)
	if err != nil {
		l.Error("Delete failed", zap.Int("files", len(req.Files)), zap.Error(err))
		return server.WriteError(c, err)
	}
	return c.JSON(res)
}

// HandleCleanup removes posters no media record references.
// @Summary Cleanup Orphan Posters
// @Description Removes objects in the catch-all posters folder that no media record references.
// @Tags storage
// @Produce json
// @Success 200 {object} reconcile.CleanupResult "Removed posters"
// @Failure 500 {object} server.ErrorBody "Storage or database failure"
// @Router /admin/storage/posters/cleanup [post]
func (h *Handler) HandleCleanup(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	res, err := h.engine.CleanupOrphanPosters(c.UserContext())
	if err != nil {
		l.Error("Poster cleanup failed", zap.Error(err))
		return server.WriteError(c, err)
	}
	return c.JSON(res)
}
