package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	momentgateway "mintmymoment/contexts/collectibles-trading/moment-gateway-service"
	authorization "mintmymoment/contexts/identity-access/authorization-service"
	authzports "mintmymoment/contexts/identity-access/authorization-service/ports"
	walletsession "mintmymoment/contexts/identity-access/wallet-session-service"
	"mintmymoment/contexts/identity-access/wallet-session-service/adapters/memory"
)

type moduleSessionSource struct {
	module walletsession.Module
}

func (s moduleSessionSource) Snapshot() authzports.SessionSnapshot {
	session := s.module.Sessions.Current()
	return authzports.SessionSnapshot{
		Connected: session.Connected,
		Principal: session.Principal,
	}
}

func newTestServer(t *testing.T, principal string) (*Server, walletsession.Module) {
	t.Helper()
	sessionModule := walletsession.NewInMemoryModule(nil, &memory.Provider{
		Principal: principal,
		AmountE8s: 500_000_000,
	})
	authzModule := authorization.NewInMemoryModule(nil, moduleSessionSource{module: sessionModule})
	tradingModule := momentgateway.NewInMemoryModule(nil)
	return New(sessionModule, authzModule, tradingModule, nil, nil, ":0"), sessionModule
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	recorder := httptest.NewRecorder()
	s.mux.ServeHTTP(recorder, request)
	return recorder
}

func TestMintRequiresConnectedSession(t *testing.T) {
	server, _ := newTestServer(t, "rno2w-sqaaa-aaaah-qcaiq-cai")

	response := do(t, server, http.MethodPost, "/api/moments", `{"title":"x"}`)
	if response.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", response.Code)
	}
}

func TestReceiptsRequireAdmin(t *testing.T) {
	server, sessions := newTestServer(t, "rno2w-sqaaa-aaaah-qcaiq-cai")
	if _, err := sessions.Handler.ConnectHandler(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	response := do(t, server, http.MethodGet, "/api/trades/receipts", "")
	if response.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin receipts access, got %d", response.Code)
	}
}

func TestMomentCatalogIsPublic(t *testing.T) {
	server, _ := newTestServer(t, "rno2w-sqaaa-aaaah-qcaiq-cai")

	response := do(t, server, http.MethodGet, "/api/moments", "")
	if response.Code != http.StatusOK {
		t.Fatalf("expected 200 for the public catalog, got %d", response.Code)
	}
	var body struct {
		Moments []struct {
			ID string `json:"id"`
		} `json:"moments"`
	}
	if err := json.Unmarshal(response.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Moments) != 3 {
		t.Fatalf("expected three seeded moments, got %d", len(body.Moments))
	}
}

func TestConnectedUserMintsThroughGateway(t *testing.T) {
	server, sessions := newTestServer(t, "rno2w-sqaaa-aaaah-qcaiq-cai")
	if _, err := sessions.Handler.ConnectHandler(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	response := do(t, server, http.MethodPost, "/api/moments", `{
		"title": "Overtime Winner",
		"description": "Game seven overtime goal",
		"sport": "Hockey",
		"player_name": "Mia Tanaka",
		"event_date": "2024-04-30"
	}`)
	if response.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", response.Code, response.Body.String())
	}
	var body struct {
		TokenID string `json:"token_id"`
	}
	if err := json.Unmarshal(response.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.TokenID == "" {
		t.Fatalf("expected a token id")
	}
}

func TestTransferByNonOwnerIsForbidden(t *testing.T) {
	server, sessions := newTestServer(t, "rno2w-sqaaa-aaaah-qcaiq-cai")
	if _, err := sessions.Handler.ConnectHandler(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	// Seed "1" is owned by the admin principal, not the connected user.
	response := do(t, server, http.MethodPost, "/api/moments/1/transfer", `{"to":"renrk-eyaaa-aaaaa-aaada-cai"}`)
	if response.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner transfer, got %d: %s", response.Code, response.Body.String())
	}
}
