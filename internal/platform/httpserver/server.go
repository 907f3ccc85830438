package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	momentgateway "mintmymoment/contexts/collectibles-trading/moment-gateway-service"
	authorization "mintmymoment/contexts/identity-access/authorization-service"
	authzhttp "mintmymoment/contexts/identity-access/authorization-service/transport/http"
	walletsession "mintmymoment/contexts/identity-access/wallet-session-service"
	sessionerrors "mintmymoment/contexts/identity-access/wallet-session-service/domain/errors"
	sessionhttp "mintmymoment/contexts/identity-access/wallet-session-service/transport/http"
	"mintmymoment/internal/platform/metrics"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "mintmymoment/internal/platform/httpserver/docs"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	session       walletsession.Module
	authorization authorization.Module
	trading       momentgateway.Module
	metrics       *metrics.Metrics
}

func New(
	sessionModule walletsession.Module,
	authorizationModule authorization.Module,
	tradingModule momentgateway.Module,
	collectors *metrics.Metrics,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		session:       sessionModule,
		authorization: authorizationModule,
		trading:       tradingModule,
		metrics:       collectors,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("GET /api/session", s.observe("GET /api/session", s.handleSessionStatus))
	s.mux.HandleFunc("POST /api/session/connect", s.observe("POST /api/session/connect", s.handleSessionConnect))
	s.mux.HandleFunc("POST /api/session/disconnect", s.observe("POST /api/session/disconnect", s.handleSessionDisconnect))

	s.mux.HandleFunc("GET /api/authz/profile", s.observe("GET /api/authz/profile", s.handleAuthzProfile))
	s.mux.HandleFunc("POST /api/authz/check", s.observe("POST /api/authz/check", s.handleAuthzCheck))

	s.registerTradingRoutes()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Handler.StatusHandler(r.Context()))
}

func (s *Server) handleSessionConnect(w http.ResponseWriter, r *http.Request) {
	resp, err := s.session.Handler.ConnectHandler(r.Context())
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSessionDisconnect(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Handler.DisconnectHandler(r.Context()))
}

func (s *Server) handleAuthzProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.authorization.Handler.ProfileHandler(r.Context()))
}

func (s *Server) handleAuthzCheck(w http.ResponseWriter, r *http.Request) {
	var req authzhttp.CheckPermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthzError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	writeJSON(w, http.StatusOK, s.authorization.Handler.CheckPermissionHandler(r.Context(), req))
}

// observe wraps a handler with request counting when metrics are wired.
func (s *Server) observe(route string, next http.HandlerFunc) http.HandlerFunc {
	if s.metrics == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()
		next(recorder, r)
		s.metrics.ObserveHTTPRequest(r.Method, route, strconv.Itoa(recorder.status), time.Since(started))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeSessionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sessionerrors.ErrProviderUnavailable):
		writeSessionError(w, http.StatusServiceUnavailable, "provider_unavailable", err.Error())
	case errors.Is(err, sessionerrors.ErrConnectionRejected):
		writeSessionError(w, http.StatusForbidden, "connection_rejected", err.Error())
	case errors.Is(err, sessionerrors.ErrNotConnected):
		writeSessionError(w, http.StatusUnauthorized, "not_connected", err.Error())
	default:
		writeSessionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeSessionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, sessionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeAuthzError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, authzhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
