// Package ui implements the player dashboard using bubbletea's Elm architecture.
//
// The [Model] combines two orthogonal states: an input mode (normal, search
// text entry, volume text entry) and an active screen (player, search results,
// playlists, favorites). A 250ms tick drives redraws while playback is
// re-fetched on a slower one second cadence, so input responsiveness never
// waits on the network.
//
// Every mutating command runs as a single tea.Cmd that issues the remote
// call, waits for the remote state to settle, re-fetches the playback
// snapshot, and delivers one message. bubbletea serializes Update, so the
// snapshot is always replaced wholesale and never observed half-written.
// When a poll fails the last known snapshot is retained and the failure
// surfaces only as a transient footer message.
//
// Keyboard navigation uses the player's fixed surface (space, n/p, s, r,
// 1-4, /, v, arrows, enter, esc, q) with contextual help displayed via
// charmbracelet/bubbles/help.
package ui
