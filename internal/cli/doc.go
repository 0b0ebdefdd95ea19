// Package cli provides the interactive Miltrack command-line shell.
//
// It wires configuration, the resolved service layer, the session
// controller, the onboarding flow, and the router into a REPL. A fresh
// start walks the onboarding phases (intro slides, permission prompts, the
// auth gate, profile setup); once onboarding completes, navigation commands
// operate on the router and session.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
