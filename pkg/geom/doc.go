// Package geom provides the 2D primitives shared by all polyskel packages:
// points, segments, and simple polygons.
//
// Conventions: X increases to the right, Y increases up the page, and a
// positive signed area means counter-clockwise winding. All types are plain
// immutable values; operations return new values and never mutate their
// receivers, so values can be shared freely across goroutines.
//
// Coordinate comparisons throughout the module use a small absolute
// tolerance ([Epsilon] by default) rather than exact equality, because the
// skeleton algorithms accumulate floating-point error in bisector and
// circumcenter computations.
package geom
