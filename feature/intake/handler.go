package intake

import (
	"errors"

	"asset-sync/core/logger"
	"asset-sync/core/notification"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles inbound media host notifications.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the intake routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/notifications", h.HandleNotification)
}

// HandleNotification accepts a media host notification.
// @Summary Accept Notification
// @Description Archives the notification, splits a metadata-change notification into one unit per asset and hands the units to the configured transport in order. Other notification types are acknowledged and ignored.
// @Tags intake
// @Accept json
// @Produce json
// @Param notification body map[string]interface{} true "Media host notification"
// @Success 200 {object} Result
// @Failure 400 {object} map[string]string "Malformed notification"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /notifications [post]
func (h *Handler) HandleNotification(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	result, err := h.service.Accept(c.Context(), c.Body())
	if errors.Is(err, notification.ErrMalformed) {
		l.Warn("Rejecting malformed notification", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Notification intake failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}
