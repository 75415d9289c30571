// Package cli implements the interactive terminal surface of the RecallAI
// client: the access gate, the session workspace with its countdown watcher,
// and the upload/chat commands.
package cli
