// Package viz replays a recorded three-body run in the terminal.
//
// [Player] is a Bubble Tea model that draws the bodies, their trails and
// clamped force arrows on a braille [Canvas], with a sidebar charting the
// minimum pairwise separation.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	[ ]   - Step backward/forward by the current speed
//	+ -   - Double/halve playback speed
//	R     - Restart from step 0
//	T     - Cycle colour themes
//	Q     - Quit
package viz
