// Package cli provides the interactive fieldadmin command-line client.
//
// It wires configuration, logging, session storage, the API client and the
// domain services, then runs a REPL on top of them. Typical flow: restore a
// persisted session if there is one, otherwise log in, then open screens
// with commands such as gestiones, clientes or dashboard.
//
// Key features:
//   - Login / Logout / Refresh, with the session persisted across runs
//   - Customer self-registration and password change
//   - Navigation through the guarded screen tree (go <path>, menu)
//   - Listings of service requests, customers, users and roles
//   - Editing of service requests, catalogs, users and roles (gestion,
//     cliente, empleado, tipo-empleado, tipo-gestion, supervisor, usuario, rol)
//   - Month-to-date dashboard for staff
//
// Every listing and editing command first navigates to its screen, so a command the
// current roles may not open is turned away exactly as the guard would turn
// away the screen. The backend still authorizes every call.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewApp and runREPL for details.
package cli
