package ga

// Stagnation tracks how long the run's best fitness has gone without
// improvement so the engine can stop a run that has converged.
type Stagnation struct {
	limit        int // 0 disables stagnation tracking
	bestFitness  float64
	lastImproved int
	generation   int
	seeded       bool
}

// NewStagnation creates a stagnation tracker. A limit of 0 (or negative)
// disables stagnation-based stopping.
func NewStagnation(limit int) *Stagnation {
	return &Stagnation{limit: limit}
}

// Update records the best fitness observed after one generation.
func (s *Stagnation) Update(bestFitness float64) {
	s.generation++
	if !s.seeded || bestFitness > s.bestFitness {
		s.bestFitness = bestFitness
		s.lastImproved = s.generation
		s.seeded = true
	}
}

// Stagnant reports whether the best fitness has failed to improve for at
// least the configured number of generations.
func (s *Stagnation) Stagnant() bool {
	if s.limit <= 0 {
		return false
	}
	return s.generation-s.lastImproved >= s.limit
}
