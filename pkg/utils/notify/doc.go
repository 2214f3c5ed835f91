// Package notify writes formatted notifications for CLI users.
//
// Message types include success (✔), error (✗), warning (⚠), info (ℹ),
// activity (►), action (↳) and title messages with customizable emojis.
// Multi-line content is indented under the first line's symbol so dispatch
// results keep their layout in a terminal.
package notify
