package httpadapter

import (
	"context"
	"log/slog"

	application "mintmymoment/contexts/identity-access/wallet-session-service/application"
	"mintmymoment/contexts/identity-access/wallet-session-service/domain/entities"
	httptransport "mintmymoment/contexts/identity-access/wallet-session-service/transport/http"
)

// Handler maps HTTP DTOs to session operations.
type Handler struct {
	Sessions *application.Service
	Logger   *slog.Logger
}

func (h Handler) StatusHandler(_ context.Context) httptransport.SessionResponse {
	return toDTO(h.Sessions.Current())
}

func (h Handler) ConnectHandler(ctx context.Context) (httptransport.SessionResponse, error) {
	session, err := h.Sessions.Connect(ctx)
	if err != nil {
		logger := application.ResolveLogger(h.Logger)
		logger.Warn("http wallet connect failed",
			"event", "session_http_connect_failed",
			"module", "identity-access/wallet-session-service",
			"layer", "transport",
			"error", err.Error(),
		)
		return httptransport.SessionResponse{}, err
	}
	return toDTO(session), nil
}

func (h Handler) DisconnectHandler(ctx context.Context) httptransport.SessionResponse {
	return toDTO(h.Sessions.Disconnect(ctx))
}

func toDTO(session entities.Session) httptransport.SessionResponse {
	return httptransport.SessionResponse{
		Connected: session.Connected,
		Principal: session.Principal,
		Balance:   session.Balance,
	}
}
