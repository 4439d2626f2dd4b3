// Package physics provides the area-preserving maps the visualization iterates.
//
// [StandardMap] is the Chirikov standard map on the unit torus:
//
//	p' = p - K/(2π) sin(2πq)   (mod 1)
//	q' = q + p'                (mod 1)
//
// It implements [dynamo.Map] for iteration and [dynamo.Configurable] so the kick strength K
// can change between steps. Tangent propagates a displacement vector for Lyapunov
// estimates.
package physics
