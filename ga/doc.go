// Package ga implements a generic, problem-agnostic genetic algorithm loop.
//
// The problem family plugs in through two abstractions: Individual, one
// candidate solution with fitness/mutate/crossover/copy, and Variant, the
// problem-specific selection and replacement policies of a generation step.
// The Engine owns the population lifecycle and runs one generation at a time:
// CreateOffspring, InsertOffspring, best tracking, progress report.
//
// The loop is single-threaded and synchronous; one generation completes
// fully before the next begins. Variants are free to evaluate fitness across
// a generation concurrently, provided evaluation only reads shared state.
package ga
