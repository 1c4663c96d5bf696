// Package services wraps the Spotify Web API endpoints the player needs:
// playback state, transport controls, search, and library listings.
//
// Calls are rate limited client-side and authenticated through a
// TokenProvider, so callers never handle tokens directly. Mutating calls
// return only an error; reads decode the response into the types in
// models.go.
package services
