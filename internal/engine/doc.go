// Package engine runs a visualization variant against a host-provided surface and frame
// loop.
//
// An Engine owns its lifecycle:
//
//	Uninitialized -> Ready -> Running <-> Paused -> Destroyed
//
// It is single-threaded: every method, and every frame callback, must be called from the
// goroutine that drives the FrameLoop. Click, slider and resize handlers only mutate state
// read by the next frame; they never advance the simulation themselves.
package engine
