// Package session owns the authenticated Identity of the fieldadmin client.
//
// # Overview
//
// A Store derives an Identity (username and roles) from the payload of the
// backend-issued access token, persists it next to the token pair through a
// Storage, restores it on the next start, and answers role queries for menus
// and route guards.
//
// # Trust boundary
//
// The access token payload is decoded but its signature is never verified.
// The Identity is a client-side projection used for UI gating only; the
// backend independently authorizes every API call. Do not use HasRole to
// protect anything the backend does not also protect.
//
// # Failure model
//
// Malformed or absent tokens are not errors: they leave the Store without an
// Identity, which is the normal unauthenticated state. Refresh reports failure
// as false and leaves state untouched; callers decide whether to log out.
//
// # Concurrency
//
// Store is safe for concurrent use. Readers never observe a partially applied
// session; concurrent SetSession or Refresh calls resolve last-writer-wins.
package session
