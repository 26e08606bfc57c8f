// Package dispatcher routes actions to handlers and coordinates execution.
//
// Actions are named "namespace.command". The Router resolves a name first
// against handlers registered for that exact name, then against the
// namespace handler for its prefix, then against an optional fallback.
//
// When an action is dispatched:
//
//  1. A command id (a UUID) is assigned to the execution context and
//     prefixed to every log line the handler writes
//  2. The router finds the handler
//  3. The handler runs, with panic recovery if configured
//  4. Statistics are recorded if enabled
//
// The dispatcher never applies results itself. The caller owns the region
// set and decides what to do with an ok, no-op, error or cancelled result.
package dispatcher
