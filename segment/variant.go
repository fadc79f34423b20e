package segment

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/evoimg/segga/ga"
)

// SegmentationGA is the segmentation variant of the evolutionary loop:
// tournament selection with uniform crossover and per-pixel mutation for
// offspring, elitist full replacement for insertion. It implements
// ga.Variant over one shared problem instance.
type SegmentationGA struct {
	instance *ProblemInstance
	config   *Config
}

// NewSegmentationGA creates the segmentation variant for an instance.
func NewSegmentationGA(inst *ProblemInstance, config *Config) *SegmentationGA {
	return &SegmentationGA{instance: inst, config: config}
}

// Instance returns the shared problem instance.
func (s *SegmentationGA) Instance() *ProblemInstance { return s.instance }

// CreateInitialPopulation builds PopSize freshly randomized genomes and
// evaluates their fitness across workers.
func (s *SegmentationGA) CreateInitialPopulation() (*ga.Population, error) {
	pop := ga.NewPopulation(s.config.GA.PopSize)
	for i := 0; i < s.config.GA.PopSize; i++ {
		pop.Add(NewRandomGenome(s.instance, s.config))
	}
	s.evaluate(pop.Individuals())
	return pop, nil
}

// CreateOffspring derives the next generation's candidates: copies of the
// elite members first, then children bred by tournament selection and, with
// the configured probability, uniform crossover (otherwise a copy of the
// fitter parent), each followed by mutation. The parent population is not
// modified.
func (s *SegmentationGA) CreateOffspring(pop *ga.Population) ([]ga.Individual, error) {
	offspring := make([]ga.Individual, 0, pop.Size())

	for _, elite := range s.elites(pop) {
		offspring = append(offspring, elite.Copy())
	}

	for len(offspring) < pop.Size() {
		parentA := s.tournament(pop)
		parentB := s.tournament(pop)

		var child ga.Individual
		if rand.Float64() < s.config.Segmentation.CrossoverRate {
			bred, err := parentA.Crossover(parentB)
			if err != nil {
				return nil, err
			}
			child = bred
		} else {
			if parentB.Fitness() > parentA.Fitness() {
				parentA = parentB
			}
			child = parentA.Copy()
		}
		child.Mutate()
		offspring = append(offspring, child)
	}

	s.evaluate(offspring)
	return offspring, nil
}

// InsertOffspring replaces the population with the offspring list. The
// elites carried through CreateOffspring keep the population from losing its
// best member.
func (s *SegmentationGA) InsertOffspring(pop *ga.Population, offspring []ga.Individual) (*ga.Population, error) {
	next := ga.NewPopulation(len(offspring))
	for _, ind := range offspring {
		next.Add(ind)
	}
	return next, nil
}

// elites returns the Elitism fittest members of the population, earliest
// inserted first on fitness ties.
func (s *SegmentationGA) elites(pop *ga.Population) []ga.Individual {
	count := s.config.Segmentation.Elitism
	if count > pop.Size() {
		count = pop.Size()
	}
	if count <= 0 {
		return nil
	}

	members := pop.Individuals()
	picked := make([]bool, len(members))
	elites := make([]ga.Individual, 0, count)
	for len(elites) < count {
		best := -1
		for i, ind := range members {
			if picked[i] {
				continue
			}
			if best < 0 || ind.Fitness() > members[best].Fitness() {
				best = i
			}
		}
		picked[best] = true
		elites = append(elites, members[best])
	}
	return elites
}

// tournament picks TournamentSize members at random (with replacement) and
// returns the fittest of them.
func (s *SegmentationGA) tournament(pop *ga.Population) ga.Individual {
	members := pop.Individuals()
	best := members[rand.Intn(len(members))]
	for i := 1; i < s.config.Segmentation.TournamentSize; i++ {
		contestant := members[rand.Intn(len(members))]
		if contestant.Fitness() > best.Fitness() {
			best = contestant
		}
	}
	return best
}

// evaluate warms the fitness cache of every individual across a bounded
// worker pool. Fitness evaluation only reads the shared immutable problem
// instance and each individual is handed to exactly one worker, so this is
// safe to run concurrently; the engine does not start the next generation
// until it returns.
func (s *SegmentationGA) evaluate(individuals []ga.Individual) {
	parallelism := s.config.GA.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if parallelism > len(individuals) {
		parallelism = len(individuals)
	}
	if parallelism <= 1 {
		for _, ind := range individuals {
			ind.Fitness()
		}
		return
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, parallelism)
	for _, ind := range individuals {
		wg.Add(1)
		sem <- struct{}{}
		go func(ind ga.Individual) {
			defer wg.Done()
			ind.Fitness()
			<-sem
		}(ind)
	}
	wg.Wait()
}
