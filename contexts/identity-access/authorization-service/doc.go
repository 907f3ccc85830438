// Package authorization implements the Authorization Service inside MintMyMoment.
//
// It derives a profile (role + permission set) from the current wallet
// session and answers capability queries. Role resolution is a pluggable
// port; the static allow-list adapter is the default provider.
//
// Layering:
// - domain: profile entity, permission derivation, invariants
// - application: capability queries using explicit ports
// - ports: stable boundaries for session reads, role resolution, caching
// - adapters: concrete allow-list, cache, and HTTP implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under identity-access context.
// - Every predicate is deny-by-default: no session, unknown principal, or a
//   failed lookup always answers false, never an error.
package authorization
