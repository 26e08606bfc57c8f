// Package mode provides the two-state modal machine that brackets pattern
// prompts.
//
// A command that needs a pattern moves the host from Normal to Awaiting before
// prompting and back to Normal once the prompt resolves, whether the user
// submitted or cancelled:
//
//	Normal ──SetMode(awaiting)──▶ Awaiting ──SetMode(normal)──▶ Normal
//
// # Mode Lifecycle
//
// When switching modes:
// 1. Current mode's Exit() is called
// 2. New mode's Enter() is called
// 3. Mode change callbacks are notified
//
// Commands depend only on the Setter interface; Manager is the in-process
// implementation used by the session host.
package mode
