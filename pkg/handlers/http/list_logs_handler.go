package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mindhaven/guardrail/pkg/domain/guardraillog"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

type listLogsHandler struct {
	logger *logrus.Logger
	repo   guardraillog.Repository
}

func NewListLogsHandler(
	logger *logrus.Logger,
	repo guardraillog.Repository,
) Handler {
	return &listLogsHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary List guardrail log entries
// @Description Returns blocked-or-erroring message records for audit review, newest first
// @Tags Logs
// @Produce json
// @Param client_id query string false "Filter by client"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} guardraillog.Entry "Log entries"
// @Failure 400 {object} map[string]interface{} "Invalid query parameters"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/logs [get]
func (h *listLogsHandler) Handle(c *fiber.Ctx) error {
	var clientID *uuid.UUID
	if raw := c.Query("client_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "client_id must be a valid UUID"})
		}
		clientID = &parsed
	}

	limit := c.QueryInt("limit", defaultPageSize)
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	entries, err := h.repo.List(c.Context(), clientID, limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("failed to list guardrail logs")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list guardrail logs"})
	}

	return c.Status(fiber.StatusOK).JSON(entries)
}
