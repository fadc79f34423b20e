package ga_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evoimg/segga/ga"
)

// stubIndividual is a minimal Individual with a fixed fitness, used to
// exercise the loop without a real problem behind it.
type stubIndividual struct {
	id      int
	fitness float64
	mutated int
}

func (s *stubIndividual) Fitness() float64 { return s.fitness }
func (s *stubIndividual) Mutate()          { s.mutated++ }

func (s *stubIndividual) Crossover(other ga.Individual) (ga.Individual, error) {
	o, ok := other.(*stubIndividual)
	if !ok {
		return nil, ga.ErrIncompatibleGenome
	}
	return &stubIndividual{fitness: (s.fitness + o.fitness) / 2}, nil
}

func (s *stubIndividual) Copy() ga.Individual {
	clone := *s
	return &clone
}

func TestFittest(t *testing.T) {
	pop := ga.NewPopulation(3)
	pop.Add(&stubIndividual{id: 0, fitness: 3.1})
	pop.Add(&stubIndividual{id: 1, fitness: 7.8})
	pop.Add(&stubIndividual{id: 2, fitness: 2.0})

	best, err := pop.Fittest()
	require.NoError(t, err)
	require.Equal(t, 7.8, best.Fitness())
	require.Equal(t, 1, best.(*stubIndividual).id)
}

func TestFittestEmptyPopulation(t *testing.T) {
	pop := ga.NewPopulation(0)
	_, err := pop.Fittest()
	require.ErrorIs(t, err, ga.ErrEmptyPopulation)
}

// TestFittestTieBreak verifies that fitness ties go to the earliest
// inserted individual.
func TestFittestTieBreak(t *testing.T) {
	pop := ga.NewPopulation(3)
	pop.Add(&stubIndividual{id: 0, fitness: 5.0})
	pop.Add(&stubIndividual{id: 1, fitness: 5.0})
	pop.Add(&stubIndividual{id: 2, fitness: 1.0})

	best, err := pop.Fittest()
	require.NoError(t, err)
	require.Equal(t, 0, best.(*stubIndividual).id)
}

func TestFitnessesOrder(t *testing.T) {
	pop := ga.NewPopulation(3)
	for _, f := range []float64{1.5, -2.0, 0.25} {
		pop.Add(&stubIndividual{fitness: f})
	}
	require.Equal(t, []float64{1.5, -2.0, 0.25}, pop.Fitnesses())
	require.Equal(t, 3, pop.Size())
}
