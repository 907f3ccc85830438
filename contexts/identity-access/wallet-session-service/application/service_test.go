package application

import (
	"context"
	"errors"
	"testing"

	"mintmymoment/contexts/identity-access/wallet-session-service/adapters/memory"
	"mintmymoment/contexts/identity-access/wallet-session-service/domain/entities"
	domainerrors "mintmymoment/contexts/identity-access/wallet-session-service/domain/errors"
)

func newService(provider *memory.Provider) *Service {
	return NewService(Config{
		Provider: LedgerTargetProvider{
			Provider:  provider,
			Whitelist: []string{"rrkah-fqaaa-aaaaa-aaaaq-cai"},
			Host:      "http://127.0.0.1:4943",
		},
	})
}

func TestConnectAdoptsProviderIdentity(t *testing.T) {
	service := newService(&memory.Provider{
		Principal: "rdmx6-jaaaa-aaaah-qcaiq-cai",
		AmountE8s: 250_000_000,
	})

	session, err := service.Connect(context.Background())
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if !session.Connected {
		t.Fatal("expected connected session")
	}
	if session.Principal != "rdmx6-jaaaa-aaaah-qcaiq-cai" {
		t.Fatalf("unexpected principal %s", session.Principal)
	}
	if session.Balance != "2.50" {
		t.Fatalf("unexpected balance %s", session.Balance)
	}
}

func TestConnectWithoutBalancesDefaultsToZero(t *testing.T) {
	service := newService(&memory.Provider{
		Principal:  "rdmx6-jaaaa-aaaah-qcaiq-cai",
		NoBalances: true,
	})

	session, err := service.Connect(context.Background())
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if session.Balance != "0.00" {
		t.Fatalf("expected default balance, got %s", session.Balance)
	}
}

func TestConnectRejectionLeavesStateUnchanged(t *testing.T) {
	service := newService(&memory.Provider{RejectConnect: true})

	session, err := service.Connect(context.Background())
	if !errors.Is(err, domainerrors.ErrConnectionRejected) {
		t.Fatalf("expected connection rejected, got %v", err)
	}
	if session.Connected {
		t.Fatal("expected session to stay disconnected")
	}
	if current := service.Current(); current.Connected {
		t.Fatal("expected current session to stay disconnected")
	}
}

func TestConnectWithoutProviderFails(t *testing.T) {
	service := NewService(Config{})

	_, err := service.Connect(context.Background())
	if !errors.Is(err, domainerrors.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable, got %v", err)
	}
}

func TestDisconnectIsIdempotent(t *testing.T) {
	service := newService(&memory.Provider{Principal: "rdmx6-jaaaa-aaaah-qcaiq-cai"})
	if _, err := service.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	first := service.Disconnect(context.Background())
	second := service.Disconnect(context.Background())
	if first != second {
		t.Fatalf("expected identical reset sessions, got %+v and %+v", first, second)
	}
	if first.Connected || first.Principal != "" || first.Balance != "0.00" {
		t.Fatalf("unexpected reset session %+v", first)
	}
}

func TestAdoptExistingConnection(t *testing.T) {
	service := newService(&memory.Provider{
		Principal:        "rno2w-sqaaa-aaaah-qcaiq-cai",
		AmountE8s:        100_000_000,
		AlreadyConnected: true,
	})

	adopted, err := service.AdoptExisting(context.Background())
	if err != nil {
		t.Fatalf("adopt failed: %v", err)
	}
	if !adopted {
		t.Fatal("expected adoption of existing connection")
	}
	if session := service.Current(); !session.Connected || session.Balance != "1.00" {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestAdoptExistingWithoutPriorConnection(t *testing.T) {
	service := newService(&memory.Provider{Principal: "rno2w-sqaaa-aaaah-qcaiq-cai"})

	adopted, err := service.AdoptExisting(context.Background())
	if err != nil {
		t.Fatalf("adopt failed: %v", err)
	}
	if adopted {
		t.Fatal("expected no adoption")
	}
}

func TestSubscribersObserveTransitions(t *testing.T) {
	service := newService(&memory.Provider{Principal: "rdmx6-jaaaa-aaaah-qcaiq-cai"})

	var transitions []entities.Session
	service.Subscribe(func(session entities.Session) {
		transitions = append(transitions, session)
	})

	if _, err := service.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	service.Disconnect(context.Background())

	if len(transitions) != 2 {
		t.Fatalf("expected 2 transitions, got %d", len(transitions))
	}
	if !transitions[0].Connected || transitions[1].Connected {
		t.Fatalf("unexpected transition order: %+v", transitions)
	}
}
