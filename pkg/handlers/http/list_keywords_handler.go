package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/mindhaven/guardrail/pkg/domain/keyword"
)

type listKeywordsHandler struct {
	logger *logrus.Logger
	repo   keyword.Repository
}

func NewListKeywordsHandler(
	logger *logrus.Logger,
	repo keyword.Repository,
) Handler {
	return &listKeywordsHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary List crisis keywords
// @Description Returns all crisis keywords, active and inactive
// @Tags Keywords
// @Produce json
// @Success 200 {array} keyword.CrisisKeyword "Keywords"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/keywords [get]
func (h *listKeywordsHandler) Handle(c *fiber.Ctx) error {
	keywords, err := h.repo.List(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("failed to list crisis keywords")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list crisis keywords"})
	}
	return c.Status(fiber.StatusOK).JSON(keywords)
}
