// Package decor is the incremental line-decoration engine. It runs
// the classifier rules over buffer lines, paints matching overlays
// through the host's paint primitive, and keeps the overlay store in
// sync with edits (full and ranged resync) and cursor movement
// (reveal of the current line's raw markup).
//
// Execution is serial: change and cursor events are processed in
// arrival order and every operation runs to completion before the
// next. The engine carries a mutex only so a host may deliver events
// from a timer goroutine (the change debouncer does).
package decor
