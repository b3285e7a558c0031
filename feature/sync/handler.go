package sync

import (
	"errors"

	"asset-sync/core/commercetools"
	"asset-sync/core/logger"
	"asset-sync/core/notification"
	"asset-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProbableCause is attached to direct-request failures raised by the catalog client.
const ProbableCause = "Probable cause: invalid token"

// Handler handles HTTP requests for asset reconciliation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/notifications/process", h.HandlePush)

	app.Post("/assets", h.HandleAddAsset)
	app.Delete("/assets", h.HandleDeleteAsset)
	app.Post("/thumbnails", h.HandleAddThumbnail)
	app.Delete("/thumbnails", h.HandleDeleteThumbnail)
	app.Post("/properties", h.HandleSetProperties)

	app.Get("/journal", h.HandleJournal)
}

// HandlePush processes one unit delivered by a Pub/Sub push subscription.
// @Summary Process Pushed Notification
// @Description Reconciles the asset named by a single-asset notification wrapped in a Pub/Sub push envelope. Non-2xx responses make Pub/Sub redeliver.
// @Tags sync
// @Accept json
// @Produce json
// @Param request body notification.PushRequest true "Push envelope"
// @Success 204 "Processed"
// @Failure 400 {object} map[string]string "Malformed envelope"
// @Failure 409 {object} map[string]string "Product version conflict"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /notifications/process [post]
func (h *Handler) HandlePush(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	unit, err := notification.DecodePush(c.Body())
	if err != nil {
		l.Warn("Rejecting malformed push delivery", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.service.ProcessNotification(c.Context(), unit)
	switch {
	case errors.Is(err, notification.ErrMalformed):
		l.Warn("Rejecting malformed unit", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, reconcile.ErrVersionConflict):
		l.Warn("Version conflict, asking for redelivery", zap.Error(err))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Notification processing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Notification processed", zap.Int("status", result.Status), zap.String("sku", result.Body.SKU))
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAddAsset adds or updates an asset record.
// @Summary Add Asset
// @Description Adds the asset record to the variant carrying the SKU, or rewrites its name and description. Publishes unless staged.
// @Tags direct
// @Accept json
// @Produce json
// @Param request body AddAssetRequest true "Asset"
// @Success 200 {object} UnitResult
// @Failure 400 {object} map[string]interface{} "Validation or catalog failure"
// @Failure 404 {object} UnitResult "Product not found"
// @Router /assets [post]
func (h *Handler) HandleAddAsset(c *fiber.Ctx) error {
	var req AddAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respond(c, nil, err)
	}
	result, err := h.service.AddAsset(c.Context(), req)
	return h.respond(c, result, err)
}

// HandleDeleteAsset removes an asset record.
// @Summary Delete Asset
// @Description Removes the asset record from the variant carrying the SKU. Publishes unless staged.
// @Tags direct
// @Accept json
// @Produce json
// @Param request body DeleteAssetRequest true "Asset"
// @Success 200 {object} UnitResult
// @Failure 400 {object} map[string]interface{} "Validation or catalog failure"
// @Failure 404 {object} UnitResult "Product not found"
// @Router /assets [delete]
func (h *Handler) HandleDeleteAsset(c *fiber.Ctx) error {
	var req DeleteAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respond(c, nil, err)
	}
	result, err := h.service.DeleteAsset(c.Context(), req)
	return h.respond(c, result, err)
}

// HandleAddThumbnail adds the derived thumbnail image.
// @Summary Add Thumbnail
// @Description Adds the 400x400 thumbnail derived from the delivery URL as an external image.
// @Tags direct
// @Accept json
// @Produce json
// @Param request body ThumbnailRequest true "Thumbnail"
// @Success 200 {object} UnitResult
// @Failure 400 {object} map[string]interface{} "Validation or catalog failure"
// @Failure 404 {object} UnitResult "Product not found"
// @Router /thumbnails [post]
func (h *Handler) HandleAddThumbnail(c *fiber.Ctx) error {
	var req ThumbnailRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respond(c, nil, err)
	}
	result, err := h.service.AddThumbnail(c.Context(), req)
	return h.respond(c, result, err)
}

// HandleDeleteThumbnail removes the derived thumbnail image.
// @Summary Delete Thumbnail
// @Description Removes the thumbnail derived from the delivery URL.
// @Tags direct
// @Accept json
// @Produce json
// @Param request body ThumbnailRequest true "Thumbnail"
// @Success 200 {object} UnitResult
// @Failure 400 {object} map[string]interface{} "Validation or catalog failure"
// @Failure 404 {object} UnitResult "Product not found"
// @Router /thumbnails [delete]
func (h *Handler) HandleDeleteThumbnail(c *fiber.Ctx) error {
	var req ThumbnailRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respond(c, nil, err)
	}
	result, err := h.service.DeleteThumbnail(c.Context(), req)
	return h.respond(c, result, err)
}

// HandleSetProperties copies metadata onto variant attributes.
// @Summary Set Properties
// @Description Sets every product type attribute whose metadata value differs from the variant. Metadata may be a field map or a field list.
// @Tags direct
// @Accept json
// @Produce json
// @Param request body PropertiesRequest true "Metadata"
// @Success 200 {object} UnitResult
// @Failure 400 {object} map[string]interface{} "Validation or catalog failure"
// @Failure 404 {object} UnitResult "Product not found"
// @Router /properties [post]
func (h *Handler) HandleSetProperties(c *fiber.Ctx) error {
	var req PropertiesRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respond(c, nil, err)
	}
	result, err := h.service.SetProperties(c.Context(), req)
	return h.respond(c, result, err)
}

// HandleJournal lists recent reconciliations.
// @Summary List Journal
// @Description Lists the most recent reconciliations, newest first.
// @Tags sync
// @Produce json
// @Param sku query string false "Filter by SKU"
// @Param publicId query string false "Filter by public id"
// @Param limit query int false "Maximum entries" default(50)
// @Success 200 {array} models.JournalEntry
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /journal [get]
func (h *Handler) HandleJournal(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	entries, err := h.service.Journal().Recent(c.Context(), JournalFilter{
		SKU:      c.Query("sku"),
		PublicID: c.Query("publicId"),
		Limit:    c.QueryInt("limit", DefaultJournalLimit),
	})
	if err != nil {
		l.Error("Journal listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(entries)
}

// respond renders a direct-request outcome. Every failure is a 400; catalog failures carry a
// hint about the caller's token.
func (h *Handler) respond(c *fiber.Ctx, result *UnitResult, err error) error {
	l := logger.WithRayID(h.service.logger, c)

	if err == nil {
		return c.Status(result.Status).JSON(result)
	}

	var verr *reconcile.ValidationError
	if errors.As(err, &verr) {
		l.Info("Rejecting invalid direct request", zap.Strings("errors", verr.Errors))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": verr.Errors})
	}

	body := fiber.Map{"error": err.Error()}
	if reconcile.IsUpstream(err, commercetools.ServiceName) {
		body["message"] = ProbableCause
	}
	l.Warn("Direct request failed", zap.Error(err))
	return c.Status(fiber.StatusBadRequest).JSON(body)
}
