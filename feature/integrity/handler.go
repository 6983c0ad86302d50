package integrity

import (
	"objectsync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/sources", h.HandleSourcesCheck)
	group.Get("/queues", h.HandleQueues)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Verifies the configured sources and summarizes queues, cache and bindings.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Failure 503 {object} map[string]interface{} "Combined Report with failing sources"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	failures := h.service.CheckSources(c.Context())
	status := fiber.StatusOK
	sources := fiber.Map{"status": "ok"}
	if len(failures) > 0 {
		status = fiber.StatusServiceUnavailable
		sources = fiber.Map{"status": "error", "failures": failures}
	}

	return c.Status(status).JSON(fiber.Map{
		"sources": sources,
		"runtime": h.service.Runtime(),
	})
}

// HandleSourcesCheck runs the source checks.
// @Summary Check Sources
// @Description Verifies that every configured table or bucket is reachable and has the configured columns.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Sources Report"
// @Failure 503 {object} map[string]interface{} "Failing sources"
// @Router /integrity/sources [get]
func (h *Handler) HandleSourcesCheck(c *fiber.Ctx) error {
	failures := h.service.CheckSources(c.Context())
	if len(failures) > 0 {
		logger.WithRayID(h.service.logger, c).Warn("Source checks failed", zap.Int("failures", len(failures)))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "error",
			"failures": failures,
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleQueues lists the live queues.
// @Summary List Queues
// @Description Lists the registered model queues with their state and number of ids.
// @Tags integrity
// @Produce json
// @Success 200 {array} QueueStatus "Queues"
// @Router /integrity/queues [get]
func (h *Handler) HandleQueues(c *fiber.Ctx) error {
	return c.JSON(h.service.Queues())
}
