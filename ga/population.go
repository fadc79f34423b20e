package ga

// Population is an ordered collection of individuals forming one generation.
// Order records insertion only; it does not encode rank.
type Population struct {
	individuals []Individual
}

// NewPopulation creates an empty population with room for capacity members.
func NewPopulation(capacity int) *Population {
	return &Population{individuals: make([]Individual, 0, capacity)}
}

// Add appends an individual to the population. All members of a population
// must share the same problem instance; this is an invariant of the caller,
// not enforced here.
func (p *Population) Add(ind Individual) {
	p.individuals = append(p.individuals, ind)
}

// Individuals returns the underlying member slice. The engine is the sole
// writer during a generation transition.
func (p *Population) Individuals() []Individual {
	return p.individuals
}

// Size returns the number of individuals in the population.
func (p *Population) Size() int {
	return len(p.individuals)
}

// Fittest returns the individual with the highest fitness. Ties are broken
// by insertion order (the earliest inserted wins). Returns ErrEmptyPopulation
// if the population has no members.
func (p *Population) Fittest() (Individual, error) {
	if len(p.individuals) == 0 {
		return nil, ErrEmptyPopulation
	}
	best := p.individuals[0]
	for _, ind := range p.individuals[1:] {
		if ind.Fitness() > best.Fitness() {
			best = ind
		}
	}
	return best, nil
}

// Fitnesses returns the fitness of every member, in insertion order.
func (p *Population) Fitnesses() []float64 {
	values := make([]float64, len(p.individuals))
	for i, ind := range p.individuals {
		values[i] = ind.Fitness()
	}
	return values
}
