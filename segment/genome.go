package segment

import (
	"fmt"
	"math/rand"

	"github.com/evoimg/segga/ga"
)

// Genome is one candidate segmentation: a direction value per pixel of the
// working image. Following the directions from any pixel walks into a root
// (a None pixel) or a cycle; every pixel feeding into the same root or cycle
// forms one segment. The decoded partition and the fitness are memoized and
// invalidated whenever the direction array changes.
//
// Genome implements ga.Individual. All genomes of a run share the same
// immutable ProblemInstance.
type Genome struct {
	instance *ProblemInstance
	config   *Config

	directions []Direction

	// Memoized decode/fitness state, valid only while decoded is true.
	decoded     bool
	segments    []int
	numSegments int
	hasFitness  bool
	fitness     float64
}

// NewGenome builds a genome from an explicit direction array. Every
// direction must lead to an in-bounds neighbor (or be None); the array
// length must equal the instance's pixel count.
func NewGenome(inst *ProblemInstance, config *Config, directions []Direction) (*Genome, error) {
	if len(directions) != inst.PixelCount() {
		return nil, fmt.Errorf("segment: genome length %d does not match pixel count %d", len(directions), inst.PixelCount())
	}
	owned := make([]Direction, len(directions))
	copy(owned, directions)
	g := &Genome{instance: inst, config: config, directions: owned}
	for i, d := range owned {
		if d == None {
			continue
		}
		if d > Right {
			return nil, fmt.Errorf("segment: pixel %d has invalid direction value %d", i, d)
		}
		if g.target(i, d) < 0 {
			return nil, fmt.Errorf("%w: pixel %d direction %s leaves the grid", ErrOutOfRange, i, d)
		}
	}
	return g, nil
}

// NewRandomGenome creates a genome by picking, for every pixel, a direction
// uniformly among its valid choices: None plus every cardinal leading to an
// in-bounds neighbor. The resulting directed graph may contain cycles and
// chains merging into the same root; that is how segments of varying size
// emerge.
func NewRandomGenome(inst *ProblemInstance, config *Config) *Genome {
	directions := make([]Direction, inst.PixelCount())
	for i := range directions {
		valid, _ := inst.ValidDirections(i)
		directions[i] = valid[rand.Intn(len(valid))]
	}
	return &Genome{instance: inst, config: config, directions: directions}
}

// Instance returns the problem instance this genome was built over.
func (g *Genome) Instance() *ProblemInstance { return g.instance }

// Directions returns the genome's direction array. It must not be modified
// by callers; use Mutate or NewGenome instead.
func (g *Genome) Directions() []Direction { return g.directions }

// target returns the pixel index the direction at pixel i points to, or -1
// if it would leave the grid or the direction is None.
func (g *Genome) target(i int, d Direction) int {
	if d == None {
		return -1
	}
	dx, dy := d.Offset()
	x, y := i%g.instance.width+dx, i/g.instance.width+dy
	if x < 0 || x >= g.instance.width || y < 0 || y >= g.instance.height {
		return -1
	}
	return y*g.instance.width + x
}

// invalidate drops the memoized decode and fitness after a mutation.
func (g *Genome) invalidate() {
	g.decoded = false
	g.segments = nil
	g.hasFitness = false
}

// Mutate reassigns each pixel's direction, independently with the configured
// per-pixel probability, to a direction chosen uniformly among the remaining
// valid choices. Mutation never produces a direction pointing off the grid.
func (g *Genome) Mutate() {
	rate := g.config.Segmentation.MutationRate
	mutated := false
	for i := range g.directions {
		if rand.Float64() >= rate {
			continue
		}
		valid, _ := g.instance.ValidDirections(i)
		if len(valid) < 2 {
			continue
		}
		// Pick uniformly among the valid directions other than the current one.
		pick := rand.Intn(len(valid) - 1)
		for _, d := range valid {
			if d == g.directions[i] {
				continue
			}
			if pick == 0 {
				g.directions[i] = d
				mutated = true
				break
			}
			pick--
		}
	}
	if mutated {
		g.invalidate()
	}
}

// Crossover builds a new genome by choosing, for each pixel independently
// and with equal probability, the direction from this genome or from the
// other parent. Neither parent is modified. Returns ga.ErrIncompatibleGenome
// if the other parent was not built over the same problem instance.
func (g *Genome) Crossover(other ga.Individual) (ga.Individual, error) {
	parentB, ok := other.(*Genome)
	if !ok || parentB.instance != g.instance {
		return nil, ga.ErrIncompatibleGenome
	}
	directions := make([]Direction, len(g.directions))
	for i := range directions {
		if rand.Float64() < 0.5 {
			directions[i] = g.directions[i]
		} else {
			directions[i] = parentB.directions[i]
		}
	}
	return &Genome{instance: g.instance, config: g.config, directions: directions}, nil
}

// Copy deep-clones the genome, including any memoized decode and fitness.
// The copy shares the problem instance but owns its direction array.
func (g *Genome) Copy() ga.Individual {
	clone := &Genome{
		instance:    g.instance,
		config:      g.config,
		directions:  make([]Direction, len(g.directions)),
		decoded:     g.decoded,
		numSegments: g.numSegments,
		hasFitness:  g.hasFitness,
		fitness:     g.fitness,
	}
	copy(clone.directions, g.directions)
	if g.segments != nil {
		clone.segments = make([]int, len(g.segments))
		copy(clone.segments, g.segments)
	}
	return clone
}

// Decode markers. Pixels start unassigned; pixels on the walk currently in
// progress are marked so a directed cycle is detected instead of looping.
const (
	segUnassigned = -1
	segInProgress = -2
)

// decode materializes the segment partition from the direction array with an
// iterative visited-marking walk. Each pixel is visited a constant number of
// times, so decoding is O(pixelCount) and terminates even when the direction
// links form cycles: a walk that runs into its own in-progress trail closes
// a new segment containing the cycle and everything feeding into it.
func (g *Genome) decode() {
	if g.decoded {
		return
	}
	n := len(g.directions)
	segments := make([]int, n)
	for i := range segments {
		segments[i] = segUnassigned
	}

	nextID := 0
	path := make([]int, 0, 64)
	for i := 0; i < n; i++ {
		if segments[i] != segUnassigned {
			continue
		}
		path = path[:0]
		cur := i
		for segments[cur] == segUnassigned {
			segments[cur] = segInProgress
			path = append(path, cur)
			next := g.target(cur, g.directions[cur])
			if next < 0 {
				break // reached a root
			}
			cur = next
		}

		var id int
		if segments[cur] >= 0 {
			// Walk merged into an already-decoded segment.
			id = segments[cur]
		} else {
			// Walk ended at a root or closed a cycle on its own trail;
			// either way this is a new segment.
			id = nextID
			nextID++
		}
		for _, p := range path {
			segments[p] = id
		}
	}

	g.segments = segments
	g.numSegments = nextID
	g.decoded = true
}

// Segments returns the decoded partition: one segment id per pixel, in
// flattened index order. The slice is memoized and must not be modified.
func (g *Genome) Segments() []int {
	g.decode()
	return g.segments
}

// NumSegments returns the number of segments the genome decodes to.
func (g *Genome) NumSegments() int {
	g.decode()
	return g.numSegments
}

// Fitness scores the decoded segmentation. Higher is better. The score
// rewards strong perceptual differentiation along segment boundaries (sum of
// pixel-graph edge weights crossing segments) and low intra-segment
// deviation (sum of member distances to the segment's mean HSV centroid),
// discourages excessive boundary length, and penalizes the degenerate
// partitions (one single segment, or every pixel its own segment). The value
// is a pure function of the direction array and the problem instance, and is
// memoized until the next mutation.
func (g *Genome) Fitness() float64 {
	if g.hasFitness {
		return g.fitness
	}
	g.decode()

	boundarySum := 0.0
	boundaryEdges := 0
	for i := range g.directions {
		neighbors, _ := g.instance.Graph().Neighbors(i)
		for _, e := range neighbors {
			if e.To < i {
				continue // count each undirected edge once
			}
			if g.segments[i] != g.segments[e.To] {
				boundarySum += e.Weight
				boundaryEdges++
			}
		}
	}

	deviation := g.intraSegmentDeviation()

	cfg := &g.config.Fitness
	fitness := cfg.EdgeWeight*boundarySum -
		cfg.DeviationWeight*deviation -
		cfg.BoundaryPenalty*float64(boundaryEdges)
	if g.numSegments <= 1 || g.numSegments >= len(g.directions) {
		fitness -= cfg.DegeneratePenalty
	}

	g.fitness = fitness
	g.hasFitness = true
	return g.fitness
}

// intraSegmentDeviation sums, over all segments, the Euclidean HSV distance
// of each member pixel to its segment's mean color.
func (g *Genome) intraSegmentDeviation() float64 {
	centroids := make([][3]float64, g.numSegments)
	counts := make([]int, g.numSegments)
	for i, id := range g.segments {
		hsv := g.instance.hsv[i]
		centroids[id][0] += hsv[0]
		centroids[id][1] += hsv[1]
		centroids[id][2] += hsv[2]
		counts[id]++
	}
	for id := range centroids {
		if counts[id] == 0 {
			continue
		}
		centroids[id][0] /= float64(counts[id])
		centroids[id][1] /= float64(counts[id])
		centroids[id][2] /= float64(counts[id])
	}

	deviation := 0.0
	for i, id := range g.segments {
		deviation += EuclideanDistanceFloats(g.instance.hsv[i], centroids[id][:])
	}
	return deviation
}
