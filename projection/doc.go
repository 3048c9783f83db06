// Package projection maps geographic coordinates onto the 2D display surface.
//
// The mapping is a linear fit of the topology's bounding box into the padded
// surface rectangle, with the vertical axis inverted for display coordinates.
// Frames are cheap value types; build a new one on every resize or topology
// change rather than mutating an existing frame.
package projection
