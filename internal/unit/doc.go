// Package unit holds the per-file state tracked across a batch compilation
// run: lifecycle phase, dependency edges in both directions, the advisory
// complexity weight, and the latest compile result.
package unit
