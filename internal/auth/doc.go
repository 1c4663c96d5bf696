// Package auth owns the OAuth2 session lifecycle: the authorization-code
// flow at startup and token validity/refresh afterwards.
//
// [Tokens] wraps the [oauth2.Config] for the Spotify account endpoints and is
// the only writer of the session's token fields. Validity uses a 60 second
// safety margin; refresh is lazy, performed on the call path of
// [Tokens.AuthorizationHeader] rather than on a background timer, so token
// freshness follows actual usage.
//
// [Authenticator] composes state generation, the browser hand-off, the
// one-shot callback listener from the server package, and the code exchange.
// The state parameter is validated against the callback before any code is
// exchanged.
package auth
