package segment

import "errors"

// Sentinel errors for the segmentation problem. None of these are expected
// in correct operation; each signals a broken invariant (mismatched problem
// instances, corrupted direction arrays, out-of-grid indices) rather than a
// transient condition, so callers abort instead of retrying.
var (
	// ErrInvalidIndex indicates a pixel index outside [0, nodeCount) was
	// passed to a graph operation.
	ErrInvalidIndex = errors.New("segment: pixel index out of range")
	// ErrOutOfRange indicates a pixel index or position outside the image
	// grid was passed to a problem-instance query.
	ErrOutOfRange = errors.New("segment: position outside image bounds")
	// ErrNoSuchEdge indicates a weight query for two pixels that are not
	// connected in the pixel graph.
	ErrNoSuchEdge = errors.New("segment: pixels are not adjacent in the graph")
)
