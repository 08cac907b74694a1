package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mindhaven/guardrail/pkg/domain/alert"
	domainerrors "github.com/mindhaven/guardrail/pkg/domain/errors"
)

type resolveAlertHandler struct {
	logger *logrus.Logger
	repo   alert.Repository
}

func NewResolveAlertHandler(
	logger *logrus.Logger,
	repo alert.Repository,
) Handler {
	return &resolveAlertHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary Resolve a crisis alert
// @Description Marks an alert as resolved by a therapist
// @Tags Alerts
// @Produce json
// @Param alert_id path string true "Alert ID"
// @Success 204 "Alert resolved"
// @Failure 400 {object} map[string]interface{} "Invalid alert ID"
// @Failure 404 {object} map[string]interface{} "Alert not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/alerts/{alert_id}/resolve [put]
func (h *resolveAlertHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("alert_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "alert_id must be a valid UUID"})
	}

	if err := h.repo.Resolve(c.Context(), id); err != nil {
		if errors.As(err, &domainerrors.ErrEntityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).Error("failed to resolve alert")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve alert"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
