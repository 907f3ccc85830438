// Package walletsession implements the Wallet Session Service inside MintMyMoment.
//
// Layering:
// - domain: session entity, invariants, errors
// - application: the session state owner using explicit ports
// - ports: stable boundary for the external signing provider
// - adapters: concrete local keystore, scriptable memory, and HTTP implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under identity-access context.
// - The session value is single-writer: only the application service mutates it.
// - Other contexts observe session state through injected read-only handles.
package walletsession
