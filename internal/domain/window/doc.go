// Package window is the authoritative model of open application windows:
// their geometry, visibility and stacking order.
//
// zOrder is the sole stacking key. Spawn and Focus draw fresh values from a
// monotonically increasing counter, so the most recently spawned or focused
// window is always on top. Operations addressed to an id that is not open
// are silent no-ops and report false.
package window
