package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	domainerrors "github.com/mindhaven/guardrail/pkg/domain/errors"
	"github.com/mindhaven/guardrail/pkg/domain/keyword"
	"github.com/mindhaven/guardrail/pkg/types"
)

type updateKeywordHandler struct {
	logger *logrus.Logger
	repo   keyword.Repository
}

func NewUpdateKeywordHandler(
	logger *logrus.Logger,
	repo keyword.Repository,
) Handler {
	return &updateKeywordHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary Update a crisis keyword
// @Description Changes the severity of a keyword or toggles it active/inactive; keywords are never deleted
// @Tags Keywords
// @Accept json
// @Produce json
// @Param keyword_id path string true "Keyword ID"
// @Param keyword body types.UpdateKeywordRequest true "Fields to update"
// @Success 200 {object} keyword.CrisisKeyword "Keyword updated"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 404 {object} map[string]interface{} "Keyword not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/keywords/{keyword_id} [put]
func (h *updateKeywordHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("keyword_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "keyword_id must be a valid UUID"})
	}

	var req types.UpdateKeywordRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind keyword request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if req.Severity == nil && req.Active == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "nothing to update"})
	}

	entity, err := h.repo.Get(c.Context(), id)
	if err != nil {
		if errors.As(err, &domainerrors.ErrEntityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).Error("failed to load crisis keyword")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load crisis keyword"})
	}

	if req.Severity != nil {
		severity := keyword.Severity(*req.Severity)
		if !severity.IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "severity must be one of low, medium, high, critical"})
		}
		entity.Severity = severity
	}
	if req.Active != nil {
		entity.Active = *req.Active
	}
	entity.UpdatedAt = time.Now()

	if err := h.repo.Update(c.Context(), entity); err != nil {
		h.logger.WithError(err).Error("failed to update crisis keyword")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update crisis keyword"})
	}

	return c.Status(fiber.StatusOK).JSON(entity)
}
