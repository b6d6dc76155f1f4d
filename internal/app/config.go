package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
// Zero values on Compiler, MaxParallel, CachePath, WeightsPath and
// Extensions mean "unset": the profile, then the built-in default, fills
// them in. CorrectionRounds uses -1 as its unset sentinel because an
// explicit 0 (no correction) is meaningful.
type Config struct {
	SourcePath  string // file or directory of sources
	ProfilePath string // optional HCL profile

	Compiler         string
	MaxParallel      int
	CorrectionRounds int
	CachePath        string
	WeightsPath      string
	Extensions       []string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SourcePath == "" && cfg.ProfilePath == "" {
		return nil, errors.New("a source path or a profile is required")
	}
	return &cfg, nil
}
