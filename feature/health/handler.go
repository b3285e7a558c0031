package health

import (
	"errors"

	"asset-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Check statuses.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusDisabled = "disabled"
)

// Handler handles HTTP requests for health checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the health routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/health")
	group.Get("/", h.HandleHealth)
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/database", h.HandleDatabaseCheck)
	group.Get("/catalog", h.HandleCatalogCheck)
}

// HandleHealth runs every check.
// @Summary Run All Health Checks
// @Description Checks the notification archive bucket, the journal database and catalog credentials. Disabled components are reported but do not fail the check.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Failure 503 {object} map[string]interface{} "Combined Report with failures"
// @Router /health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	ctx := c.Context()
	report := make(map[string]interface{})
	healthy := true

	if exists, err := h.service.CheckStorage(ctx); err != nil {
		report["storage"] = statusOf(err)
		healthy = healthy && errors.Is(err, ErrDisabled)
	} else {
		report["storage"] = map[string]interface{}{"status": StatusOK, "exists": exists}
		healthy = healthy && exists
	}

	if missing, err := h.service.CheckDatabase(); err != nil {
		report["database"] = statusOf(err)
		healthy = healthy && errors.Is(err, ErrDisabled)
	} else {
		report["database"] = map[string]interface{}{"status": StatusOK, "missing": missing}
		healthy = healthy && len(missing) == 0
	}

	if err := h.service.CheckCatalog(ctx); err != nil {
		report["catalog"] = statusOf(err)
		healthy = healthy && errors.Is(err, ErrDisabled)
	} else {
		report["catalog"] = map[string]interface{}{"status": StatusOK}
	}

	if !healthy {
		l.Warn("Health check failed", zap.Any("report", report))
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}

// HandleStorageCheck checks and optionally fixes the archive bucket.
// @Summary Check Archive Bucket
// @Description Checks that the notification archive bucket exists. Optionally creates it.
// @Tags health
// @Produce json
// @Param fix query boolean false "Create the bucket when missing"
// @Success 200 {object} map[string]interface{} "Storage Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /health/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	exists, err := h.service.CheckStorage(c.Context())
	if errors.Is(err, ErrDisabled) {
		return c.JSON(statusOf(err))
	}
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !exists {
		l.Warn("Archive bucket missing", zap.String("bucket", h.service.archive.Bucket()))

		if fix {
			l.Info("Attempting to create archive bucket")
			if err := h.service.FixStorage(c.Context()); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to create bucket",
					"details": err.Error(),
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"bucket": h.service.archive.Bucket(),
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "checked",
		"bucket": h.service.archive.Bucket(),
		"exists": exists,
	})
}

// HandleDatabaseCheck checks and optionally migrates the journal table.
// @Summary Check Journal Database
// @Description Pings the journal database and lists journal columns that are missing. Optionally migrates the table.
// @Tags health
// @Produce json
// @Param fix query boolean false "Migrate the journal table"
// @Success 200 {object} map[string]interface{} "Database Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /health/database [get]
func (h *Handler) HandleDatabaseCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	missing, err := h.service.CheckDatabase()
	if errors.Is(err, ErrDisabled) {
		return c.JSON(statusOf(err))
	}
	if err != nil {
		l.Error("Database check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Journal columns missing", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to migrate journal table")
			if err := h.service.FixDatabase(); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to migrate journal",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleCatalogCheck verifies catalog credentials.
// @Summary Check Catalog Credentials
// @Description Obtains a catalog token and reads the project.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "Catalog Report"
// @Failure 502 {object} map[string]string "Catalog unreachable"
// @Router /health/catalog [get]
func (h *Handler) HandleCatalogCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	err := h.service.CheckCatalog(c.Context())
	if errors.Is(err, ErrDisabled) {
		return c.JSON(statusOf(err))
	}
	if err != nil {
		l.Error("Catalog check failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"status": StatusError, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": StatusOK})
}

func statusOf(err error) map[string]interface{} {
	if errors.Is(err, ErrDisabled) {
		return map[string]interface{}{"status": StatusDisabled}
	}
	return map[string]interface{}{"status": StatusError, "error": err.Error()}
}
