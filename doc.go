// Package segga evolves image segmentations with a genetic algorithm.
//
// A segmentation is encoded as one cardinal direction per pixel: following
// the directions from any pixel leads into a root (or a cycle), and every
// pixel that feeds into the same root belongs to the same segment. The GA
// mutates and recombines these direction arrays and scores them against a
// pixel-adjacency graph weighted by perceptual (HSV) color distance.
//
// The repository is split into a generic evolutionary loop and the
// segmentation problem built on top of it:
//
//	ga        - Individual/Population/Engine, problem-agnostic
//	segment   - PixelGraph, ProblemInstance, Genome, GA policies, config
//	imageutil - image decoding, scaling, and segment rendering
//
// Basic usage:
//
//	config, err := segment.LoadConfig("path/to/config")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	inst, err := segment.NewProblemInstance("flowers", img, config.Segmentation.ImageScaling)
//	if err != nil {
//		log.Fatalf("Error building problem instance: %v", err)
//	}
//
//	engine := ga.NewEngine(segment.NewSegmentationGA(inst, config), &config.GA)
//	best, err := engine.Run()
//	if err != nil {
//		log.Fatalf("Error running evolution: %v", err)
//	}
//
//	segments := best.(*segment.Genome).Segments()
package segga
