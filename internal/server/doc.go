// Package server provides the one-shot local HTTP listener that completes the
// OAuth2 authorization-code flow.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Callback Handler
//
// [CallbackHandler] receives the provider redirect on /callback, validates the
// state parameter (CSRF protection), and sends the authorization code through a
// channel. Token exchange happens elsewhere; this package never talks to the
// token endpoint.
//
// It only processes one redirect. Requests without a code or error parameter
// (browser favicon probes, reloads of other paths) are logged and ignored so
// the wait continues.
//
// # Usage
//
// The auth package starts a temporary server on the loopback address matching
// the registered redirect URI, awaits the single result, and shuts the server
// down. The listener is never reused as a long-lived server.
package server
