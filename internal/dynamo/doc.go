// Package dynamo provides the core primitives shared by the visualization engines.
//
// The package defines the fundamental types for iterated maps on the unit torus:
//
//   - [Point]: a (q, p) position in [0,1)x[0,1)
//   - [Map]: a deterministic step rule
//   - [Configurable]: runtime-adjustable parameters
//   - [TrigTable]: optional table-driven sine for low-power rendering
//
// # Example
//
//	m := physics.NewStandardMap(1.0)
//	orbit := dynamo.Iterate(m, dynamo.Point{Q: 0.1, P: 0.2}, 800)
//
// # Thread Safety
//
// Maps are NOT thread-safe while their parameters are being changed. Engines run on a
// single frame loop and mutate parameters between frames only.
package dynamo
