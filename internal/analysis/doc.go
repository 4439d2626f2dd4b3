// Package analysis characterizes the standard map's dynamics.
//
//   - [LyapunovExponent]: maximal exponent of one orbit via the tangent map
//   - [SeparationExponent]: the same estimate from two nearby orbits on the torus
//   - [ChaoticFraction]: share of a grid of initial conditions with a positive exponent
//   - [Sweep]: both measures across a range of kick strengths, computed in parallel
//
// # Chaos Detection
//
// A positive exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(physics.NewStandardMap(k), pt, 100, 2000)
//	if lambda > 0.01 {
//	    // orbit is chaotic
//	}
package analysis
