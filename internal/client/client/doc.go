// Package client talks to the field-service REST backend.
//
// # Overview
//
// API is a small JSON-over-HTTP client. It injects the access token of the
// current session as a bearer token and, when a request comes back 401, asks
// the session to refresh once and retries the request once with the new
// token. Login, token refresh and public registration are sent without a
// token and are never retried.
//
// Every request goes through a logging transport that tags it with an
// X-Request-Id header and, outside production, logs method, URL and status
// (and optionally headers and bodies).
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError, which unwraps to one of the
// sentinel errors so callers can match with errors.Is: ErrUnauthorized,
// ErrForbidden, ErrNotFound, ErrValidation, ErrUnavailable. Transport
// failures also map to ErrUnavailable.
//
// Concurrency & Contexts
//
// API is safe for concurrent use once SetAuthenticator has been called. All
// operations accept context.Context and honor cancellation.
package client
