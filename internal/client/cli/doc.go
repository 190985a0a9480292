// Package cli provides the interactive chat client.
//
// It wires configuration, the local session database, the API client and the
// services into a REPL. The REPL is organised as views (home, login,
// register, chat, profile); every navigation goes through guard.Resolve, so a
// signed-out user asking for the chat lands on the login view.
//
// While the chat view is open a feed.Poller prints new messages in the
// background. Leaving the view stops it.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
