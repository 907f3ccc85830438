// Package momentgateway implements the Moment Gateway Service inside MintMyMoment.
//
// It exposes the domain operations over sports-moment tokens (list, fetch by
// owner, mint, buy, transfer) against a remote ledger, degrading to a
// deterministic fixture backend when the ledger is unreachable. Availability
// is probed per operation; the gateway holds no persistent mode flag.
//
// Layering:
// - domain: moment entity, principal value object, error taxonomy
// - application: probe-and-select orchestration plus trade receipt workers
// - ports: ledger backend, content store, receipt, and event boundaries
// - adapters: remote HTTP ledger client, fixture backend, pinata content
//   store, postgres/memory receipt repositories, HTTP handler
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Authorization is enforced by callers; this module never consults roles.
// - Exactly one backend serves any single call; results are never merged.
package momentgateway
