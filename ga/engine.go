package ga

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the parameters of the evolutionary loop itself. Problem
// variants carry their own configuration separately.
type Config struct {
	PopSize              int     `ini:"pop_size"`
	GenerationLimit      int     `ini:"generation_limit"`
	FitnessThreshold     float64 `ini:"fitness_threshold"`
	NoFitnessTermination bool    `ini:"no_fitness_termination"`
	StagnationLimit      int     `ini:"stagnation_limit"` // 0 disables stagnation-based stopping
	Parallelism          int     `ini:"parallelism"`
}

// Variant supplies the problem-specific policies of one generation step:
// how the initial population is built, how offspring are derived from the
// current population, and how they replace it.
type Variant interface {
	// CreateInitialPopulation builds the first generation.
	CreateInitialPopulation() (*Population, error)

	// CreateOffspring derives a candidate offspring list from the current
	// population (selection and recombination policy). It must not modify
	// the population it is given.
	CreateOffspring(pop *Population) ([]Individual, error)

	// InsertOffspring forms the next generation from the current population
	// and the offspring list (replacement policy).
	InsertOffspring(pop *Population, offspring []Individual) (*Population, error)
}

// Engine drives the evolutionary loop over a Variant.
//
// State machine: Uninitialized -> Initialized (Init) -> Evolving
// (RunGeneration, repeatedly) -> Terminated. Any error inside a generation
// step is fatal to that run; the engine never retries a partial generation.
type Engine struct {
	Config     *Config
	Variant    Variant
	Population *Population
	Generation int
	Best       Individual // Best individual found so far
	stagnation *Stagnation
}

// NewEngine creates an engine for the given variant. Init must be called
// before the first generation runs.
func NewEngine(variant Variant, config *Config) *Engine {
	return &Engine{
		Config:     config,
		Variant:    variant,
		stagnation: NewStagnation(config.StagnationLimit),
	}
}

// Init builds the initial population. It is an error to call RunGeneration
// before Init, or to call Init twice.
func (e *Engine) Init() error {
	if e.Population != nil {
		return errors.New("ga: engine already initialized")
	}
	pop, err := e.Variant.CreateInitialPopulation()
	if err != nil {
		return fmt.Errorf("failed to create initial population: %w", err)
	}
	if pop.Size() == 0 {
		return ErrEmptyPopulation
	}
	e.Population = pop
	return nil
}

// RunGeneration executes a single generation: derive offspring, insert them
// as the next population, update the best individual, and print progress.
// Returns the winning individual if the fitness threshold is met this
// generation, otherwise nil.
func (e *Engine) RunGeneration() (Individual, error) {
	if e.Population == nil {
		return nil, errors.New("ga: engine not initialized")
	}
	e.Generation++

	offspring, err := e.Variant.CreateOffspring(e.Population)
	if err != nil {
		return nil, fmt.Errorf("offspring creation failed in generation %d: %w", e.Generation, err)
	}

	next, err := e.Variant.InsertOffspring(e.Population, offspring)
	if err != nil {
		return nil, fmt.Errorf("offspring insertion failed in generation %d: %w", e.Generation, err)
	}
	if next.Size() == 0 {
		return nil, fmt.Errorf("generation %d: %w", e.Generation, ErrEmptyPopulation)
	}
	e.Population = next

	currentBest, err := e.Population.Fittest()
	if err != nil {
		return nil, err
	}
	if e.Best == nil || currentBest.Fitness() > e.Best.Fitness() {
		e.Best = currentBest
	}
	e.stagnation.Update(e.Best.Fitness())

	e.PrintState()

	if !e.Config.NoFitnessTermination && e.Best.Fitness() >= e.Config.FitnessThreshold {
		return e.Best, nil
	}
	return nil, nil
}

// PrintState reports the generation's fittest, mean, and worst fitness as an
// observable progress signal.
func (e *Engine) PrintState() {
	fitnesses := e.Population.Fitnesses()
	fmt.Printf("Generation %d: fittest %.4f, mean %.4f, worst %.4f\n",
		e.Generation, MaxFloat(fitnesses), Mean(fitnesses), MinFloat(fitnesses))
}

// Run drives the loop until the fitness threshold is met, the best fitness
// stagnates past the configured limit, or the generation limit is reached.
// It returns the best individual found.
func (e *Engine) Run() (Individual, error) {
	if e.Population == nil {
		if err := e.Init(); err != nil {
			return nil, err
		}
	}
	start := time.Now()
	for e.Generation < e.Config.GenerationLimit {
		winner, err := e.RunGeneration()
		if err != nil {
			return e.Best, err
		}
		if winner != nil {
			fmt.Printf("Fitness threshold met in generation %d (%s elapsed)\n", e.Generation, time.Since(start))
			return winner, nil
		}
		if e.stagnation.Stagnant() {
			fmt.Printf("Stopping: no improvement for %d generations\n", e.Config.StagnationLimit)
			break
		}
	}
	return e.Best, nil
}
