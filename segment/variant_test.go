package segment_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evoimg/segga/ga"
	"github.com/evoimg/segga/segment"
)

func TestCreateInitialPopulationSize(t *testing.T) {
	inst := twoBandInstance(t)
	config := segment.DefaultConfig()
	config.GA.PopSize = 17

	variant := segment.NewSegmentationGA(inst, config)
	pop, err := variant.CreateInitialPopulation()
	require.NoError(t, err)
	require.Equal(t, 17, pop.Size())
}

func TestCreateOffspringPreservesParents(t *testing.T) {
	inst := twoBandInstance(t)
	config := segment.DefaultConfig()
	config.GA.PopSize = 10
	config.Segmentation.MutationRate = 0.5

	variant := segment.NewSegmentationGA(inst, config)
	pop, err := variant.CreateInitialPopulation()
	require.NoError(t, err)

	type snapshot struct {
		directions []segment.Direction
		fitness    float64
	}
	before := make([]snapshot, pop.Size())
	for i, ind := range pop.Individuals() {
		g := ind.(*segment.Genome)
		before[i] = snapshot{directions: directionsOf(g), fitness: g.Fitness()}
	}

	offspring, err := variant.CreateOffspring(pop)
	require.NoError(t, err)
	require.Len(t, offspring, pop.Size())

	for i, ind := range pop.Individuals() {
		g := ind.(*segment.Genome)
		require.Equal(t, before[i].directions, directionsOf(g), "parent %d genome modified", i)
		require.Equal(t, before[i].fitness, g.Fitness(), "parent %d fitness modified", i)
	}
}

func TestInsertOffspringReplacesPopulation(t *testing.T) {
	inst := twoBandInstance(t)
	config := segment.DefaultConfig()
	config.GA.PopSize = 6

	variant := segment.NewSegmentationGA(inst, config)
	pop, err := variant.CreateInitialPopulation()
	require.NoError(t, err)

	offspring, err := variant.CreateOffspring(pop)
	require.NoError(t, err)
	next, err := variant.InsertOffspring(pop, offspring)
	require.NoError(t, err)

	require.Equal(t, pop.Size(), next.Size())
	require.Equal(t, offspring, next.Individuals())
}

// TestElitismKeepsBestFitness verifies that the best fitness never drops
// from one generation to the next while elitism is enabled.
func TestElitismKeepsBestFitness(t *testing.T) {
	inst := twoBandInstance(t)
	config := segment.DefaultConfig()
	config.GA.PopSize = 12
	config.GA.GenerationLimit = 15
	config.GA.NoFitnessTermination = true
	config.Segmentation.Elitism = 2
	config.Segmentation.MutationRate = 0.3

	engine := ga.NewEngine(segment.NewSegmentationGA(inst, config), &config.GA)
	require.NoError(t, engine.Init())

	best, err := engine.Population.Fittest()
	require.NoError(t, err)
	last := best.Fitness()
	for i := 0; i < config.GA.GenerationLimit; i++ {
		_, err := engine.RunGeneration()
		require.NoError(t, err)
		best, err := engine.Population.Fittest()
		require.NoError(t, err)
		require.GreaterOrEqual(t, best.Fitness(), last)
		last = best.Fitness()
	}
}

// TestEvolveTwoBandImage is the end-to-end check: on a 2x2 image made of two
// identical-color pairs with a strong boundary between them, an evolved run
// should reach at least the fitness of the hand-built two-segment genome.
func TestEvolveTwoBandImage(t *testing.T) {
	inst := twoBandInstance(t)
	config := segment.DefaultConfig()
	config.GA.PopSize = 40
	config.GA.GenerationLimit = 80
	config.GA.NoFitnessTermination = true
	config.GA.Parallelism = 1
	config.Segmentation.MutationRate = 0.2
	config.Segmentation.Elitism = 2

	known, err := segment.NewGenome(inst, config, []segment.Direction{
		segment.Right, segment.None, segment.Right, segment.None,
	})
	require.NoError(t, err)

	engine := ga.NewEngine(segment.NewSegmentationGA(inst, config), &config.GA)
	best, err := engine.Run()
	require.NoError(t, err)
	require.NotNil(t, best)

	require.GreaterOrEqual(t, best.Fitness(), known.Fitness())
	require.Equal(t, 2, best.(*segment.Genome).NumSegments())
}

// TestEvolveSeparatesColorBlocks runs the loop on a slightly larger image
// with two clear color halves and checks the decoded best partition puts
// the halves in different segments.
func TestEvolveSeparatesColorBlocks(t *testing.T) {
	img := newTestImage([][]color.RGBA{
		{red, red, blue, blue},
		{red, red, blue, blue},
	})
	inst, err := segment.NewProblemInstance("blocks", img, 1.0)
	require.NoError(t, err)

	config := segment.DefaultConfig()
	config.GA.PopSize = 60
	config.GA.GenerationLimit = 150
	config.GA.NoFitnessTermination = true
	config.Segmentation.MutationRate = 0.1
	config.Segmentation.Elitism = 3

	engine := ga.NewEngine(segment.NewSegmentationGA(inst, config), &config.GA)
	best, err := engine.Run()
	require.NoError(t, err)

	segments := best.(*segment.Genome).Segments()
	// Pixels of the same color half should at least not be split from their
	// horizontal neighbor more often than they are joined; assert the two
	// strongest constraints: no red pixel shares a segment with a blue one.
	for _, i := range []int{0, 1, 4, 5} {
		for _, j := range []int{2, 3, 6, 7} {
			require.NotEqual(t, segments[i], segments[j],
				"red pixel %d and blue pixel %d ended up in the same segment", i, j)
		}
	}
}
