// Package editor provides the token editing controller that sits between a
// UI host and the buffer package.
//
// The controller routes host intents (proposed edits, taps, selection
// reports) into buffer operations. It owns the normal/composition mode
// state machine, the token lifecycle (add, update, delete, tokenize all) and
// the cursor clamping policy. Host notifications are delivered through the
// Host interface after each operation completes.
package editor
