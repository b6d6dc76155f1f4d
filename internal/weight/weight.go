// Package weight estimates a normalized per-file complexity weight from file
// size and extension. The weight is advisory: it feeds efficiency reporting,
// never scheduling order.
package weight

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// sizeNormalizer is the byte count at which an unweighted file saturates the
// [0,1] range; typical source files land near the middle.
const sizeNormalizer = 10000.0

// defaultFactor applies to extensions with no explicit entry.
const defaultFactor = 0.5

// Factors maps a file extension (with leading dot) to its complexity
// multiplier. A richly-typed source extension weighs more than a plain
// script one.
type Factors map[string]float64

// DefaultFactors returns the built-in extension multipliers.
func DefaultFactors() Factors {
	return Factors{
		".ts":  1.0,
		".tsx": 1.2,
		".js":  0.8,
		".jsx": 1.0,
	}
}

// LoadFactors reads an extension-to-multiplier override map from a YAML
// file. Extensions missing from the file keep the built-in defaults.
func LoadFactors(path string) (Factors, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading weight factors: %w", err)
	}
	overrides := make(map[string]float64)
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing weight factors %s: %w", path, err)
	}
	f := DefaultFactors()
	for ext, v := range overrides {
		f[ext] = v
	}
	return f, nil
}

// Estimate computes the complexity weight for a file of the given size and
// extension: clamp(size/normalizer * factor, 0, 1). Deterministic, no side
// effects, never fails.
func (f Factors) Estimate(sizeBytes int64, ext string) float64 {
	factor, ok := f[ext]
	if !ok {
		factor = defaultFactor
	}
	w := float64(sizeBytes) / sizeNormalizer * factor
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}
