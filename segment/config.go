package segment

import (
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/evoimg/segga/ga"
)

// Config stores every parameter of a segmentation run.
type Config struct {
	GA           ga.Config
	Segmentation SegmentationConfig
	Fitness      FitnessConfig
}

// SegmentationConfig holds the problem-specific GA policy parameters.
type SegmentationConfig struct {
	ImageScaling   float64 `ini:"image_scaling"`
	MutationRate   float64 `ini:"mutation_rate"`   // per-pixel mutation probability
	CrossoverRate  float64 `ini:"crossover_rate"`  // probability a child is bred by crossover rather than copied
	TournamentSize int     `ini:"tournament_size"` // contestants per parent selection
	Elitism        int     `ini:"elitism"`         // fittest members carried into the next generation
}

// FitnessConfig holds the weights of the segmentation fitness function.
type FitnessConfig struct {
	EdgeWeight        float64 `ini:"edge_weight"`        // reward per unit of boundary edge weight
	DeviationWeight   float64 `ini:"deviation_weight"`   // cost per unit of intra-segment deviation
	BoundaryPenalty   float64 `ini:"boundary_penalty"`   // cost per boundary edge (discourages over-segmentation)
	DegeneratePenalty float64 `ini:"degenerate_penalty"` // flat cost for single-segment or all-singleton partitions
}

// DefaultConfig returns a configuration with workable defaults for typical
// photographs scaled to a few thousand pixels.
func DefaultConfig() *Config {
	return &Config{
		GA: ga.Config{
			PopSize:              50,
			GenerationLimit:      100,
			FitnessThreshold:     0,
			NoFitnessTermination: true,
			StagnationLimit:      0,
			Parallelism:          0, // 0 = number of CPUs
		},
		Segmentation: SegmentationConfig{
			ImageScaling:   1.0,
			MutationRate:   0.005,
			CrossoverRate:  0.8,
			TournamentSize: 3,
			Elitism:        2,
		},
		Fitness: FitnessConfig{
			EdgeWeight:        1.0,
			DeviationWeight:   2.0,
			BoundaryPenalty:   0.05,
			DegeneratePenalty: 100.0,
		},
	}
}

// LoadConfig loads configuration parameters from an INI file with [GA],
// [Segmentation], and [Fitness] sections. Keys absent from the file keep
// their defaults.
func LoadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	config := DefaultConfig()

	if err := cfg.Section("GA").MapTo(&config.GA); err != nil {
		return nil, fmt.Errorf("failed to map [GA] section: %w", err)
	}
	if err := cfg.Section("Segmentation").MapTo(&config.Segmentation); err != nil {
		return nil, fmt.Errorf("failed to map [Segmentation] section: %w", err)
	}
	if err := cfg.Section("Fitness").MapTo(&config.Fitness); err != nil {
		return nil, fmt.Errorf("failed to map [Fitness] section: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks every parameter for a usable value.
func (c *Config) Validate() error {
	if c.GA.PopSize <= 0 {
		return fmt.Errorf("config error: pop_size must be positive")
	}
	if c.GA.GenerationLimit <= 0 {
		return fmt.Errorf("config error: generation_limit must be positive")
	}
	if c.GA.StagnationLimit < 0 {
		return fmt.Errorf("config error: stagnation_limit cannot be negative")
	}
	if c.GA.Parallelism < 0 {
		return fmt.Errorf("config error: parallelism cannot be negative")
	}
	if c.Segmentation.ImageScaling <= 0 {
		return fmt.Errorf("config error: image_scaling must be positive")
	}
	if c.Segmentation.MutationRate < 0 || c.Segmentation.MutationRate > 1 {
		return fmt.Errorf("config error: mutation_rate must be between 0 and 1")
	}
	if c.Segmentation.CrossoverRate < 0 || c.Segmentation.CrossoverRate > 1 {
		return fmt.Errorf("config error: crossover_rate must be between 0 and 1")
	}
	if c.Segmentation.TournamentSize <= 0 {
		return fmt.Errorf("config error: tournament_size must be positive")
	}
	if c.Segmentation.TournamentSize > c.GA.PopSize {
		return fmt.Errorf("config error: tournament_size cannot exceed pop_size")
	}
	if c.Segmentation.Elitism < 0 {
		return fmt.Errorf("config error: elitism cannot be negative")
	}
	if c.Segmentation.Elitism > c.GA.PopSize {
		return fmt.Errorf("config error: elitism cannot exceed pop_size")
	}
	if c.Fitness.EdgeWeight < 0 || c.Fitness.DeviationWeight < 0 {
		return fmt.Errorf("config error: fitness weights cannot be negative")
	}
	if c.Fitness.BoundaryPenalty < 0 || c.Fitness.DegeneratePenalty < 0 {
		return fmt.Errorf("config error: fitness penalties cannot be negative")
	}
	return nil
}
