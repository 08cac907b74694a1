package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mindhaven/guardrail/pkg/domain/keyword"
	"github.com/mindhaven/guardrail/pkg/types"
)

type createKeywordHandler struct {
	logger *logrus.Logger
	repo   keyword.Repository
}

func NewCreateKeywordHandler(
	logger *logrus.Logger,
	repo keyword.Repository,
) Handler {
	return &createKeywordHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary Create a crisis keyword
// @Description Adds a new active crisis keyword to the configurable set
// @Tags Keywords
// @Accept json
// @Produce json
// @Param keyword body types.CreateKeywordRequest true "Keyword request body"
// @Success 201 {object} keyword.CrisisKeyword "Keyword created"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/keywords [post]
func (h *createKeywordHandler) Handle(c *fiber.Ctx) error {
	var req types.CreateKeywordRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind keyword request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if req.Keyword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "keyword is required"})
	}

	severity := keyword.Severity(req.Severity)
	if !severity.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "severity must be one of low, medium, high, critical"})
	}

	id, err := uuid.NewV6()
	if err != nil {
		h.logger.WithError(err).Error("failed to generate UUID")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to generate UUID"})
	}

	entity := &keyword.CrisisKeyword{
		ID:        id,
		Keyword:   req.Keyword,
		Severity:  severity,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.repo.Create(c.Context(), entity); err != nil {
		h.logger.WithError(err).Error("failed to create crisis keyword")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create crisis keyword"})
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
