package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainerrors "mintmymoment/contexts/collectibles-trading/moment-gateway-service/domain/errors"
	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/ports"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "rrkah-fqaaa-aaaaa-aaaaq-cai", 2*time.Second, nil)
}

func TestCountProbe(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/canisters/rrkah-fqaaa-aaaaa-aaaaq-cai/nfts/count" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"count": 7})
	}))

	count, err := client.Count(context.Background())
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 7 {
		t.Fatalf("expected 7, got %d", count)
	}
}

func TestCountFailureIsRemoteUnavailable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "rrkah-fqaaa-aaaaa-aaaaq-cai", 200*time.Millisecond, nil)

	_, err := client.Count(context.Background())
	if !errors.Is(err, domainerrors.ErrRemoteUnavailable) {
		t.Fatalf("expected remote unavailable, got %v", err)
	}
}

func TestListAllNormalizesRecords(t *testing.T) {
	createdAt := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"nfts": []map[string]any{{
				"id":        "42",
				"title":     "Test Moment",
				"sport":     "Tennis",
				"owner":     "  RRKAH-FQAAA-AAAAA-AAAAQ-CAI ",
				"creator":   "rrkah-fqaaa-aaaaa-aaaaq-cai",
				"price":     250_000_000,
				"createdAt": createdAt.UnixNano(),
			}},
		})
	}))

	moments, err := client.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(moments) != 1 {
		t.Fatalf("expected 1 moment, got %d", len(moments))
	}
	moment := moments[0]
	if moment.Price != "2.50" {
		t.Fatalf("expected normalized price 2.50, got %s", moment.Price)
	}
	if !moment.CreatedAt.Equal(createdAt) {
		t.Fatalf("expected normalized timestamp %v, got %v", createdAt, moment.CreatedAt)
	}
	if moment.Owner != "rrkah-fqaaa-aaaaa-aaaaq-cai" {
		t.Fatalf("expected canonical owner, got %q", moment.Owner)
	}
}

func TestMintSurfacesRemoteRejection(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"err": "Unauthorized: caller is not verified"})
	}))

	_, err := client.Mint(context.Background(), ports.MintSubmission{Title: "x"})
	var rejected *domainerrors.RemoteRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected remote rejection, got %v", err)
	}
	if rejected.Reason != "Unauthorized: caller is not verified" {
		t.Fatalf("expected verbatim remote reason, got %q", rejected.Reason)
	}
}

func TestMintReturnsTokenID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["price"] != float64(250_000_000) {
			t.Fatalf("expected nominal price in submission, got %v", body["price"])
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"ok": "101"})
	}))

	id, err := client.Mint(context.Background(), ports.MintSubmission{
		Title: "x", PriceE8s: 250_000_000,
	})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if id != "101" {
		t.Fatalf("expected token id 101, got %s", id)
	}
}

func TestBuySuccessAndRejection(t *testing.T) {
	responses := []string{`{"ok":null}`, `{"err":"NFT not for sale"}`}
	index := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(responses[index]))
		index++
	}))

	if err := client.Buy(context.Background(), "1", "renrk-eyaaa-aaaaa-aaada-cai"); err != nil {
		t.Fatalf("buy failed: %v", err)
	}

	err := client.Buy(context.Background(), "1", "renrk-eyaaa-aaaaa-aaada-cai")
	var rejected *domainerrors.RemoteRejectedError
	if !errors.As(err, &rejected) || rejected.Reason != "NFT not for sale" {
		t.Fatalf("expected verbatim rejection, got %v", err)
	}
}
