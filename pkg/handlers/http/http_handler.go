package http

import "github.com/gofiber/fiber/v2"

const ErrInvalidJsonPayload = "invalid JSON payload"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Guardrail
	CheckMessageHandler Handler

	// Keywords
	CreateKeywordHandler Handler
	ListKeywordsHandler  Handler
	UpdateKeywordHandler Handler

	// Logs
	ListLogsHandler Handler

	// Alerts
	ListAlertsHandler   Handler
	ResolveAlertHandler Handler

	// Version
	GetVersionHandler Handler
}
