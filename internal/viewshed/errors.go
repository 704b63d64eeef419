package viewshed

import "errors"

var (
	// ErrEmptyGrid is returned for non-positive grid dimensions.
	ErrEmptyGrid = errors.New("viewshed: non-positive grid dimensions")

	// ErrOutOfBounds is returned when the viewpoint lies outside the grid.
	ErrOutOfBounds = errors.New("viewshed: viewpoint outside grid")

	// ErrShapeMismatch is returned when the output grid shape differs from
	// the input grid shape.
	ErrShapeMismatch = errors.New("viewshed: output grid shape differs from input")

	// ErrIndexFault signals a defect in the active-line slot accounting.
	// The sweep aborts rather than produce a partially stamped grid.
	ErrIndexFault = errors.New("viewshed: active line slot accounting fault")
)
