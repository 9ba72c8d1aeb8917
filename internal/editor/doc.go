// Package editor composes the key decoder, line buffer, history,
// search, and autocomplete into the blocking capture loop: render the
// prompt, wait for one key event, dispatch it to whichever mode is
// active, repeat until Enter submits the line.
//
// An Editor persists across captures and owns the history ring. Each
// Capture call creates its own buffer, navigation overlay, and modal
// state, all discarded when the call returns.
package editor
