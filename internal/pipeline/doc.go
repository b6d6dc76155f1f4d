// Package pipeline is the staged, bounded-parallel batch orchestrator. It
// drives four strictly sequential phases over a batch of source files
// (weight initialization, dependency linking, parallel compilation, and a
// bounded error-correction loop), with each phase internally data-parallel
// and every compile attempt admitted through a shared counting semaphore.
//
// A phase never starts before the previous phase has fully drained: reverse
// dependency edges are only correct once every unit's imports are known, and
// correction must see the complete results map of the execute phase.
package pipeline
