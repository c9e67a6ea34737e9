// Package ui implements the terminal user interface for cayenne-watch.
//
// The monitor connects to a decode gateway's /v1/stream WebSocket and
// shows the latest reading for every sensor key, highlighting the keys
// touched by the most recent payload, along with a short log of recent
// payloads.
//
// Built on Bubble Tea with Lip Gloss styling, following the usual
// model/update/view split: WatchModel holds all state, stream reads run
// as tea.Cmds, and the view is recomputed from the model every frame.
package ui
