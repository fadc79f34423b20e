package segment

import "fmt"

// Edge pairs a neighboring pixel index with the weight of the connection.
type Edge struct {
	To     int
	Weight float64
}

// PixelGraph is an undirected weighted adjacency store over pixel nodes,
// addressed by flattened index y*width + x. It holds edges only between
// 4-connected neighbors, weighted by perceptual color distance, and is fixed
// once the problem instance finishes building it. No traversal algorithms
// live here; it is a pure adjacency/weight store.
type PixelGraph struct {
	adjacency [][]Edge
}

// NewPixelGraph creates a graph with nodeCount isolated pixel nodes.
func NewPixelGraph(nodeCount int) *PixelGraph {
	return &PixelGraph{adjacency: make([][]Edge, nodeCount)}
}

// NodeCount returns the number of pixel nodes.
func (g *PixelGraph) NodeCount() int {
	return len(g.adjacency)
}

// AddConnection registers an undirected edge between pixel indices i and j
// with the given non-negative weight. Registering the same unordered pair
// again overwrites the previous weight (last write wins); this only happens
// during construction. Returns ErrInvalidIndex if either index is outside
// [0, nodeCount).
func (g *PixelGraph) AddConnection(i, j int, weight float64) error {
	if i < 0 || i >= len(g.adjacency) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}
	if j < 0 || j >= len(g.adjacency) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, j)
	}
	g.setEdge(i, j, weight)
	g.setEdge(j, i, weight)
	return nil
}

// setEdge records the directed half of an undirected edge.
func (g *PixelGraph) setEdge(from, to int, weight float64) {
	for k := range g.adjacency[from] {
		if g.adjacency[from][k].To == to {
			g.adjacency[from][k].Weight = weight
			return
		}
	}
	g.adjacency[from] = append(g.adjacency[from], Edge{To: to, Weight: weight})
}

// Neighbors returns the edges registered on pixel i, in construction order.
// Returns ErrInvalidIndex if i is outside [0, nodeCount).
func (g *PixelGraph) Neighbors(i int) ([]Edge, error) {
	if i < 0 || i >= len(g.adjacency) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}
	return g.adjacency[i], nil
}

// Weight returns the weight of the edge between pixels i and j. Returns
// ErrInvalidIndex for an out-of-range index and ErrNoSuchEdge if the two
// pixels are not connected.
func (g *PixelGraph) Weight(i, j int) (float64, error) {
	if i < 0 || i >= len(g.adjacency) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}
	if j < 0 || j >= len(g.adjacency) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidIndex, j)
	}
	for _, e := range g.adjacency[i] {
		if e.To == j {
			return e.Weight, nil
		}
	}
	return 0, fmt.Errorf("%w: %d-%d", ErrNoSuchEdge, i, j)
}
