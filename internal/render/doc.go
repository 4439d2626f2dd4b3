// Package render draws populations onto a 2D canvas.
//
// Drawing happens in logical pixels. A canvas backed by a raster image is scaled by the
// device pixel ratio once, when it is allocated; callers never see physical pixels.
//
// Phase-space coordinates map to pixels as x = q*width, y = (1-p)*height, so that
// increasing p renders upward.
package render
