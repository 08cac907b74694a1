package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/mindhaven/guardrail/pkg/domain/alert"
)

type listAlertsHandler struct {
	logger *logrus.Logger
	repo   alert.Repository
}

func NewListAlertsHandler(
	logger *logrus.Logger,
	repo alert.Repository,
) Handler {
	return &listAlertsHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary List crisis alerts
// @Description Returns alerts for the therapist-facing badge, newest first; filter with ?resolved=
// @Tags Alerts
// @Produce json
// @Param resolved query bool false "Filter by resolved state"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} alert.Alert "Alerts"
// @Failure 400 {object} map[string]interface{} "Invalid query parameters"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/alerts [get]
func (h *listAlertsHandler) Handle(c *fiber.Ctx) error {
	var resolved *bool
	switch c.Query("resolved") {
	case "":
	case "true":
		v := true
		resolved = &v
	case "false":
		v := false
		resolved = &v
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "resolved must be true or false"})
	}

	limit := c.QueryInt("limit", defaultPageSize)
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	alerts, err := h.repo.List(c.Context(), resolved, limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("failed to list alerts")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list alerts"})
	}

	return c.Status(fiber.StatusOK).JSON(alerts)
}
