// Package viz hosts the engine in a terminal using Bubble Tea.
//
// The surface is a braille [Canvas]: every terminal cell carries 2x4 sub-pixels with an
// intensity each, so the translucent fade behind particle trails survives the trip to a
// character grid. The tea tick pumps the engine's frame loop; window resizes and mouse
// presses reach the engine through its event bus.
//
// # Key Bindings
//
//	Space - Start/stop the frame loop
//	R     - Reset the population or animation
//	+/-   - Adjust the live parameter
//	M     - Toggle reduced motion
//	T     - Cycle colour themes
//	?     - Show help overlay
package viz
