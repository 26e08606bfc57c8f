// Package input defines the actions that drive selection commands.
//
// An Action names a command in "namespace.command" form and carries its
// arguments. Actions are produced by the command line, the interactive
// loop and Lua scripts, and are routed by the dispatcher. The mode
// subpackage holds the Normal/Awaiting state machine that brackets
// pattern prompts.
package input
