// Package export renders a pendulum and its trail to files: SVG through a
// small writer over geom coordinates, and PNG through the gg rasterizer.
//
// Both renderers share a [Viewport] that places the pivot at the image
// centre and scales each rod to a fixed fraction of the shorter side, with
// y pointing down as in screen space.
package export
