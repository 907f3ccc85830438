package unit

import (
	"context"
	"testing"

	authorization "mintmymoment/contexts/identity-access/authorization-service"
	authzports "mintmymoment/contexts/identity-access/authorization-service/ports"
	authzhttp "mintmymoment/contexts/identity-access/authorization-service/transport/http"
	walletsession "mintmymoment/contexts/identity-access/wallet-session-service"
	"mintmymoment/contexts/identity-access/wallet-session-service/adapters/memory"
)

// walletSource adapts the session module into the authorization deriver's
// read-only port, the same bridge the composition root uses.
type walletSource struct {
	module walletsession.Module
}

func (w walletSource) Snapshot() authzports.SessionSnapshot {
	session := w.module.Sessions.Current()
	return authzports.SessionSnapshot{
		Connected: session.Connected,
		Principal: session.Principal,
	}
}

func buildIdentityStack(t *testing.T, principal string) (walletsession.Module, authorization.Module) {
	t.Helper()
	wallet := walletsession.NewInMemoryModule(nil, &memory.Provider{
		Principal: principal,
		AmountE8s: 500_000_000,
	})
	authz := authorization.NewInMemoryModule(nil, walletSource{module: wallet})
	return wallet, authz
}

func TestAuthorizationDeniesEverythingWithoutSession(t *testing.T) {
	_, authz := buildIdentityStack(t, "rrkah-fqaaa-aaaaa-aaaaq-cai")

	profile := authz.Handler.ProfileHandler(context.Background())
	if profile.Authenticated {
		t.Fatalf("expected unauthenticated profile before connect")
	}

	decision := authz.Handler.CheckPermissionHandler(context.Background(), authzhttp.CheckPermissionRequest{
		Permission: "mint_nft",
	})
	if decision.Allowed {
		t.Fatalf("expected deny without a session")
	}
	if decision.Reason != "no_active_session" {
		t.Fatalf("unexpected reason %q", decision.Reason)
	}
}

func TestAuthorizationDerivesAdminFromAllowList(t *testing.T) {
	wallet, authz := buildIdentityStack(t, "rrkah-fqaaa-aaaaa-aaaaq-cai")
	if _, err := wallet.Handler.ConnectHandler(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	profile := authz.Handler.ProfileHandler(context.Background())
	if !profile.Authenticated {
		t.Fatalf("expected authenticated profile")
	}
	if profile.Role != "admin" {
		t.Fatalf("expected admin role, got %q", profile.Role)
	}

	for _, permission := range []string{"mint_nft", "buy_nft", "admin_dashboard", "moderate_all_content"} {
		decision := authz.Handler.CheckPermissionHandler(context.Background(), authzhttp.CheckPermissionRequest{
			Permission: permission,
		})
		if !decision.Allowed {
			t.Fatalf("expected admin to hold %q", permission)
		}
	}
}

func TestAuthorizationRegularUserHoldsBasePermissionsOnly(t *testing.T) {
	wallet, authz := buildIdentityStack(t, "rno2w-sqaaa-aaaah-qcaiq-cai")
	if _, err := wallet.Handler.ConnectHandler(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	if !authz.Authz.CanMintNFT(context.Background()) {
		t.Fatalf("expected regular users to mint")
	}
	if authz.Authz.CanAccessAdmin(context.Background()) {
		t.Fatalf("regular users must not reach the admin surface")
	}
	if authz.Authz.CanTransferNFT(context.Background(), "someone-else") {
		t.Fatalf("regular users must not transfer tokens they do not own")
	}
	if !authz.Authz.CanTransferNFT(context.Background(), "rno2w-sqaaa-aaaah-qcaiq-cai") {
		t.Fatalf("owners must transfer their own tokens")
	}
}

func TestAuthorizationDisconnectRevokesCapabilities(t *testing.T) {
	wallet, authz := buildIdentityStack(t, "rrkah-fqaaa-aaaaa-aaaaq-cai")
	if _, err := wallet.Handler.ConnectHandler(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if !authz.Authz.CanAccessAdmin(context.Background()) {
		t.Fatalf("expected admin access while connected")
	}

	wallet.Handler.DisconnectHandler(context.Background())

	if authz.Authz.CanAccessAdmin(context.Background()) {
		t.Fatalf("disconnect must revoke admin access")
	}
	if authz.Authz.CanMintNFT(context.Background()) {
		t.Fatalf("disconnect must revoke minting")
	}
}
