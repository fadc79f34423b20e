package segment

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/evoimg/segga/imageutil"
)

// ProblemInstance holds one image segmentation problem: the working image's
// dimensions, the per-pixel RGB and perceptual HSV triplets, and the pixel
// graph connecting 4-neighbors with HSV-distance weights. It is built once
// and is immutable afterwards, so it is safely shared read-only by every
// genome of a run.
type ProblemInstance struct {
	name           string
	width, height  int
	originalWidth  int
	originalHeight int
	imageScaling   float64

	rgb [][]int     // per pixel index, [r g b] in 0..255
	hsv [][]float64 // per pixel index, [h s v] with hue normalized to [0,1]

	graph *PixelGraph
	// valid[i] lists the directions usable at pixel i: None plus every
	// cardinal that stays on the grid.
	valid [][]Direction
}

// NewProblemInstance builds a problem instance from a source image and a
// scaling factor (1 = no scaling). The working image is the scaled source;
// per-pixel colors and the pixel graph are derived from it.
func NewProblemInstance(name string, source image.Image, imageScaling float64) (*ProblemInstance, error) {
	if source == nil {
		return nil, errors.New("segment: source image is nil")
	}
	if imageScaling <= 0 {
		return nil, fmt.Errorf("segment: image scaling must be positive, got %g", imageScaling)
	}

	working := imageutil.Scale(source, imageScaling)
	w, h := working.Bounds().Dx(), working.Bounds().Dy()
	n := w * h

	inst := &ProblemInstance{
		name:           name,
		width:          w,
		height:         h,
		originalWidth:  source.Bounds().Dx(),
		originalHeight: source.Bounds().Dy(),
		imageScaling:   imageScaling,
		rgb:            make([][]int, n),
		hsv:            make([][]float64, n),
		graph:          NewPixelGraph(n),
		valid:          make([][]Direction, n),
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := working.At(x, y).RGBA()
			c := colorful.Color{R: float64(r) / 65535.0, G: float64(g) / 65535.0, B: float64(b) / 65535.0}
			hue, sat, val := c.Hsv()
			i := y*w + x
			inst.rgb[i] = []int{int(r >> 8), int(g >> 8), int(b >> 8)}
			// Normalize hue from degrees to [0,1] so the three channels are
			// commensurate in the distance metric.
			inst.hsv[i] = []float64{hue / 360.0, sat, val}
		}
	}

	// Connect every pixel to its existing 4-connected neighbors, weighted by
	// the Euclidean distance between the two pixels' HSV triplets. Each edge
	// is registered from both endpoints; the second write is a no-op.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			valid := []Direction{None}
			for _, d := range []Direction{Up, Down, Left, Right} {
				dx, dy := d.Offset()
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				valid = append(valid, d)
				j := ny*w + nx
				if err := inst.graph.AddConnection(i, j, EuclideanDistanceFloats(inst.hsv[i], inst.hsv[j])); err != nil {
					return nil, err
				}
			}
			inst.valid[i] = valid
		}
	}

	return inst, nil
}

// Name returns the name of the problem instance.
func (pi *ProblemInstance) Name() string { return pi.name }

// Width returns the working image width in pixels.
func (pi *ProblemInstance) Width() int { return pi.width }

// Height returns the working image height in pixels.
func (pi *ProblemInstance) Height() int { return pi.height }

// PixelCount returns the number of pixels in the working image.
func (pi *ProblemInstance) PixelCount() int { return pi.width * pi.height }

// OriginalWidth returns the source image width prior to scaling.
func (pi *ProblemInstance) OriginalWidth() int { return pi.originalWidth }

// OriginalHeight returns the source image height prior to scaling.
func (pi *ProblemInstance) OriginalHeight() int { return pi.originalHeight }

// ImageScaling returns the scaling factor applied to the source image.
func (pi *ProblemInstance) ImageScaling() float64 { return pi.imageScaling }

// Graph returns the pixel adjacency graph.
func (pi *ProblemInstance) Graph() *PixelGraph { return pi.graph }

// PixelIndexToPos projects a flattened pixel index into an (x, y) position.
// Returns ErrOutOfRange if the index is outside [0, width*height).
func (pi *ProblemInstance) PixelIndexToPos(i int) (x, y int, err error) {
	if i < 0 || i >= pi.PixelCount() {
		return 0, 0, fmt.Errorf("%w: index %d", ErrOutOfRange, i)
	}
	return i % pi.width, i / pi.width, nil
}

// PosToPixelIndex projects an (x, y) position into a flattened pixel index.
// Returns ErrOutOfRange if the position lies outside the grid. The mapping
// is the inverse of PixelIndexToPos.
func (pi *ProblemInstance) PosToPixelIndex(x, y int) (int, error) {
	if x < 0 || x >= pi.width || y < 0 || y >= pi.height {
		return 0, fmt.Errorf("%w: position (%d,%d)", ErrOutOfRange, x, y)
	}
	return y*pi.width + x, nil
}

// RGB returns the [r g b] triplet of the pixel at index i.
// Returns ErrOutOfRange if the index is outside the grid.
func (pi *ProblemInstance) RGB(i int) ([]int, error) {
	if i < 0 || i >= pi.PixelCount() {
		return nil, fmt.Errorf("%w: index %d", ErrOutOfRange, i)
	}
	return pi.rgb[i], nil
}

// HSV returns the perceptual [h s v] triplet of the pixel at index i, with
// hue normalized to [0,1]. Returns ErrOutOfRange if the index is outside
// the grid.
func (pi *ProblemInstance) HSV(i int) ([]float64, error) {
	if i < 0 || i >= pi.PixelCount() {
		return nil, fmt.Errorf("%w: index %d", ErrOutOfRange, i)
	}
	return pi.hsv[i], nil
}

// DirectionBetween returns the cardinal direction to go from pixel i to
// pixel j, or None if the two pixels are not 4-adjacent (including i == j).
// Returns ErrOutOfRange if either index is outside the grid. This mapping
// uses the same adjacency rule as the pixel graph, so a non-None result
// always corresponds to a registered edge.
func (pi *ProblemInstance) DirectionBetween(i, j int) (Direction, error) {
	xFrom, yFrom, err := pi.PixelIndexToPos(i)
	if err != nil {
		return None, err
	}
	xTo, yTo, err := pi.PixelIndexToPos(j)
	if err != nil {
		return None, err
	}
	return DirectionBetweenPos(xFrom, yFrom, xTo, yTo), nil
}

// DirectionBetweenPos returns the cardinal direction to go from (xFrom,
// yFrom) to (xTo, yTo), or None if the positions are not 4-adjacent. Two
// positions are adjacent when exactly one coordinate differs by exactly 1.
func DirectionBetweenPos(xFrom, yFrom, xTo, yTo int) Direction {
	if yFrom == yTo {
		if xTo == xFrom+1 {
			return Right
		}
		if xTo == xFrom-1 {
			return Left
		}
	} else if xFrom == xTo {
		if yTo == yFrom+1 {
			return Down
		}
		if yTo == yFrom-1 {
			return Up
		}
	}
	return None
}

// ValidDirections returns the directions usable at pixel i: None plus every
// cardinal leading to an in-bounds neighbor. The slice is shared and must
// not be modified. Returns ErrOutOfRange if the index is outside the grid.
func (pi *ProblemInstance) ValidDirections(i int) ([]Direction, error) {
	if i < 0 || i >= pi.PixelCount() {
		return nil, fmt.Errorf("%w: index %d", ErrOutOfRange, i)
	}
	return pi.valid[i], nil
}

// EuclideanDistance returns the perceptual (HSV) color distance between two
// pixels. Returns ErrOutOfRange if either index is outside the grid. The
// result is symmetric and zero for i == j.
func (pi *ProblemInstance) EuclideanDistance(i, j int) (float64, error) {
	a, err := pi.HSV(i)
	if err != nil {
		return 0, err
	}
	b, err := pi.HSV(j)
	if err != nil {
		return 0, err
	}
	return EuclideanDistanceFloats(a, b), nil
}

// EuclideanDistanceFloats returns the Euclidean distance between two real
// channel vectors of equal length (any channel count >= 1).
func EuclideanDistanceFloats(a, b []float64) float64 {
	sumOfSquares := 0.0
	for i := range a {
		d := a[i] - b[i]
		sumOfSquares += d * d
	}
	return math.Sqrt(sumOfSquares)
}

// EuclideanDistanceInts returns the Euclidean distance between two integer
// channel vectors of equal length (any channel count >= 1).
func EuclideanDistanceInts(a, b []int) float64 {
	sumOfSquares := 0.0
	for i := range a {
		d := float64(a[i] - b[i])
		sumOfSquares += d * d
	}
	return math.Sqrt(sumOfSquares)
}
