package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	tradingerrors "mintmymoment/contexts/collectibles-trading/moment-gateway-service/domain/errors"
	tradinghttp "mintmymoment/contexts/collectibles-trading/moment-gateway-service/transport/http"
	"mintmymoment/contexts/identity-access/authorization-service/domain/services"
)

func (s *Server) registerTradingRoutes() {
	s.mux.HandleFunc("GET /api/moments", s.observe("GET /api/moments", s.handleListMoments))
	s.mux.HandleFunc("GET /api/moments/{moment_id}", s.observe("GET /api/moments/{moment_id}", s.handleGetMoment))
	s.mux.HandleFunc("GET /api/users/{principal}/moments", s.observe("GET /api/users/{principal}/moments", s.handleListOwnedMoments))
	s.mux.HandleFunc("POST /api/moments", s.observe("POST /api/moments", s.handleMintMoment))
	s.mux.HandleFunc("POST /api/moments/{moment_id}/buy", s.observe("POST /api/moments/{moment_id}/buy", s.handleBuyMoment))
	s.mux.HandleFunc("POST /api/moments/{moment_id}/transfer", s.observe("POST /api/moments/{moment_id}/transfer", s.handleTransferMoment))
	s.mux.HandleFunc("GET /api/trades/receipts", s.observe("GET /api/trades/receipts", s.handleListReceipts))
}

func (s *Server) handleListMoments(w http.ResponseWriter, r *http.Request) {
	resp, err := s.trading.Handler.ListMomentsHandler(r.Context())
	if err != nil {
		writeTradingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetMoment(w http.ResponseWriter, r *http.Request) {
	resp, err := s.trading.Handler.GetMomentHandler(r.Context(), r.PathValue("moment_id"))
	if err != nil {
		writeTradingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListOwnedMoments(w http.ResponseWriter, r *http.Request) {
	resp, err := s.trading.Handler.ListByOwnerHandler(r.Context(), r.PathValue("principal"))
	if err != nil {
		writeTradingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMintMoment(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.currentPrincipal()
	if !ok {
		writeTradingError(w, http.StatusUnauthorized, "not_connected", "wallet connection is required")
		return
	}
	if !s.authorization.Authz.CanMintNFT(r.Context()) {
		writeTradingError(w, http.StatusForbidden, "permission_missing", "mint_nft permission is required")
		return
	}

	var req tradinghttp.MintMomentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTradingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.trading.Handler.MintHandler(r.Context(), caller, req)
	if err != nil {
		writeTradingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleBuyMoment(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.currentPrincipal()
	if !ok {
		writeTradingError(w, http.StatusUnauthorized, "not_connected", "wallet connection is required")
		return
	}
	if !s.authorization.Authz.HasPermission(r.Context(), services.PermBuyNFT) {
		writeTradingError(w, http.StatusForbidden, "permission_missing", "buy_nft permission is required")
		return
	}

	var req tradinghttp.BuyMomentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTradingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.trading.Handler.BuyHandler(r.Context(), caller, r.PathValue("moment_id"), req)
	if err != nil {
		writeTradingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransferMoment(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.currentPrincipal()
	if !ok {
		writeTradingError(w, http.StatusUnauthorized, "not_connected", "wallet connection is required")
		return
	}

	momentID := r.PathValue("moment_id")
	moment, err := s.trading.Handler.GetMomentHandler(r.Context(), momentID)
	if err != nil {
		writeTradingDomainError(w, err)
		return
	}
	if !s.authorization.Authz.CanTransferNFT(r.Context(), moment.Owner) {
		writeTradingError(w, http.StatusForbidden, "permission_missing", "only the owner or a moderator may transfer this moment")
		return
	}

	var req tradinghttp.TransferMomentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTradingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.trading.Handler.TransferHandler(r.Context(), caller, momentID, req)
	if err != nil {
		writeTradingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListReceipts(w http.ResponseWriter, r *http.Request) {
	if !s.authorization.Authz.CanAccessAdmin(r.Context()) {
		writeTradingError(w, http.StatusForbidden, "permission_missing", "admin_dashboard permission is required")
		return
	}

	limit := 0
	if limitRaw := r.URL.Query().Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeTradingError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	resp, err := s.trading.Handler.ListReceiptsHandler(r.Context(), limit)
	if err != nil {
		writeTradingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) currentPrincipal() (string, bool) {
	session := s.session.Sessions.Current()
	if !session.Connected {
		return "", false
	}
	return session.Principal, true
}

func writeTradingDomainError(w http.ResponseWriter, err error) {
	var validation *tradingerrors.ValidationError
	var rejected *tradingerrors.RemoteRejectedError
	switch {
	case errors.As(err, &validation):
		writeTradingError(w, http.StatusBadRequest, "validation_failed", validation.Error())
	case errors.As(err, &rejected):
		writeTradingError(w, http.StatusConflict, "remote_rejected", rejected.Reason)
	case errors.Is(err, tradingerrors.ErrMomentNotFound):
		writeTradingError(w, http.StatusNotFound, "moment_not_found", err.Error())
	case errors.Is(err, tradingerrors.ErrRemoteUnavailable):
		writeTradingError(w, http.StatusBadGateway, "remote_unavailable", err.Error())
	default:
		writeTradingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeTradingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, tradinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
