package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mindhaven/guardrail/pkg/config"
	handlers "github.com/mindhaven/guardrail/pkg/handlers/http"
	"github.com/mindhaven/guardrail/pkg/middleware"
)

type (
	GuardrailServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	GuardrailServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewGuardrailServer(di GuardrailServerDI) *GuardrailServer {
	s := &GuardrailServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}
	s.BaseServer.setupMetricsEndpoint()
	return s
}

func (s *GuardrailServer) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()

	addr := fmt.Sprintf(":%d", s.config.Server.Port)
	s.logger.WithField("addr", addr).Info("starting guardrail server")
	return s.router.Listen(addr)
}

func (s *GuardrailServer) setupRoutes() {
	v1 := s.router.Group("/api/v1")
	{
		// Called by the chat backend for every message in both directions.
		v1.Post("/guardrail/check", s.handlerTransport.CheckMessageHandler.Handle)

		v1.Get("/version", s.handlerTransport.GetVersionHandler.Handle)

		admin := v1.Group("", s.middlewareTransport.AdminAuthMiddleware.Middleware())
		{
			keywords := admin.Group("/keywords")
			{
				keywords.Post("", s.handlerTransport.CreateKeywordHandler.Handle)
				keywords.Get("", s.handlerTransport.ListKeywordsHandler.Handle)
				keywords.Put("/:keyword_id", s.handlerTransport.UpdateKeywordHandler.Handle)
			}

			admin.Get("/logs", s.handlerTransport.ListLogsHandler.Handle)

			alerts := admin.Group("/alerts")
			{
				alerts.Get("", s.handlerTransport.ListAlertsHandler.Handle)
				alerts.Put("/:alert_id/resolve", s.handlerTransport.ResolveAlertHandler.Handle)
			}
		}
	}
}

func (s *GuardrailServer) Shutdown() error {
	return s.router.Shutdown()
}
