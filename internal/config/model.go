package config

// Profile is the format-agnostic representation of a batch profile file.
// Pointer fields distinguish "unset" from an explicit zero so the CLI can
// layer its own values on top.
type Profile struct {
	SourcePath          *string
	Compiler            *string
	MaxParallel         *int
	MaxCorrectionRounds *int
	CachePath           *string
	WeightsPath         *string
	Extensions          []string
}
