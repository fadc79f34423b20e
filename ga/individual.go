package ga

import "errors"

// Sentinel errors for the evolutionary loop.
var (
	// ErrEmptyPopulation indicates a query for the fittest member of a
	// population that has no individuals.
	ErrEmptyPopulation = errors.New("ga: population has no individuals")
	// ErrIncompatibleGenome indicates an operation mixing individuals that
	// were not built over the same problem instance.
	ErrIncompatibleGenome = errors.New("ga: individuals belong to different problem instances")
)

// Individual is one candidate solution in the evolutionary loop.
// Implementations own their genome state; the engine only ever compares
// fitness values and invokes the genetic operators below.
type Individual interface {
	// Fitness returns the individual's fitness. Higher is better. The value
	// must be a pure function of the genome and is expected to be memoized
	// by the implementation.
	Fitness() float64

	// Mutate perturbs the genome in place and invalidates any cached fitness.
	Mutate()

	// Crossover combines this individual with another parent and returns a
	// new child. Neither parent is modified. Returns ErrIncompatibleGenome
	// if the parents were built over different problem instances.
	Crossover(other Individual) (Individual, error)

	// Copy returns a deep clone of the individual. The clone owns its own
	// genome state but shares the (immutable) problem instance.
	Copy() Individual
}
