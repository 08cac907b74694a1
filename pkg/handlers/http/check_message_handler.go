package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mindhaven/guardrail/pkg/domain/guardraillog"
	"github.com/mindhaven/guardrail/pkg/guardrail"
	"github.com/mindhaven/guardrail/pkg/types"
)

type checkMessageHandler struct {
	logger  *logrus.Logger
	checker guardrail.Checker
}

func NewCheckMessageHandler(
	logger *logrus.Logger,
	checker guardrail.Checker,
) Handler {
	return &checkMessageHandler{
		logger:  logger,
		checker: checker,
	}
}

// Handle @Summary Run the guardrail pipeline on one message
// @Description Checks a message against crisis keywords and AI moderation; returns the allow/block decision
// @Tags Guardrail
// @Accept json
// @Produce json
// @Param message body types.CheckMessageRequest true "Message to check"
// @Success 200 {object} types.CheckMessageResponse "Decision reached (including blocked)"
// @Failure 400 {object} map[string]interface{} "Missing or invalid fields"
// @Failure 500 {object} map[string]interface{} "Unrecoverable error"
// @Router /api/v1/guardrail/check [post]
func (h *checkMessageHandler) Handle(c *fiber.Ctx) error {
	var req types.CheckMessageRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind check request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text is required"})
	}
	if req.ClientID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "client_id is required"})
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "client_id must be a valid UUID"})
	}

	direction := guardraillog.Direction(req.Direction)
	if req.Direction == "" {
		direction = guardraillog.DirectionIn
	}
	if !direction.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "direction must be \"in\" or \"out\""})
	}

	result, err := h.checker.Check(c.Context(), guardrail.Message{
		ClientID:  clientID,
		Direction: direction,
		Text:      req.Text,
	})
	if err != nil {
		// Alert persistence failed; the decision is unusable because a
		// crisis signal may have been lost.
		h.logger.WithError(err).Error("guardrail check failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to raise crisis alert"})
	}

	response := types.CheckMessageResponse{
		Allowed:  result.Allowed,
		Reason:   result.Reason,
		Severity: string(result.Severity),
	}
	if !result.Allowed {
		response.Message = guardrail.SelectSafeResponse(result.Reason)
	}

	return c.Status(fiber.StatusOK).JSON(response)
}
