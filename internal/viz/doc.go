// Package viz is the terminal front end of the sandbox.
//
// [Model] is a Bubble Tea program that owns a [sandbox.World], turns
// terminal mouse events into pointer events and draws every body on a
// braille [Canvas]. The side panel shows a population graph, the slider
// positions and the field polarity.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step while paused
//	R     - Reset the world
//	C     - Clear every ball
//	+ -   - Time scale
//	g G   - Gravity scale
//	S     - Toggle GIF recording
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
