// Package hcl implements the config.Loader interface for HCL batch profile
// files.
//
// A profile looks like:
//
//	batch {
//	  source                = "./src"
//	  compiler              = "passthrough"
//	  max_parallel          = cores * 2
//	  max_correction_rounds = 4
//	  cache                 = ".prismc-cache.db"
//	  extensions            = [".ts", ".tsx"]
//	}
//
// The `cores` variable evaluates to the host's logical CPU count.
package hcl

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/prismc/internal/config"
	"github.com/vk/prismc/internal/ctxlog"
)

// profileSchema mirrors the HCL surface of a profile file.
type profileSchema struct {
	Batch *batchSchema `hcl:"batch,block"`
}

type batchSchema struct {
	Source              *string  `hcl:"source,optional"`
	Compiler            *string  `hcl:"compiler,optional"`
	MaxParallel         *int     `hcl:"max_parallel,optional"`
	MaxCorrectionRounds *int     `hcl:"max_correction_rounds,optional"`
	Cache               *string  `hcl:"cache,optional"`
	Weights             *string  `hcl:"weights,optional"`
	Extensions          []string `hcl:"extensions,optional"`
}

// Loader parses HCL profile files into the agnostic model.
type Loader struct{}

// NewLoader returns an HCL profile loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, path string) (*config.Profile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	return l.Parse(ctx, path, src)
}

// Parse decodes profile source bytes. Split from Load so tests can feed
// literal HCL without touching disk.
func (l *Loader) Parse(ctx context.Context, filename string, src []byte) (*config.Profile, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing profile %s: %w", filename, diags)
	}

	var schema profileSchema
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &schema); diags.HasErrors() {
		return nil, fmt.Errorf("decoding profile %s: %w", filename, diags)
	}
	if schema.Batch == nil {
		return nil, fmt.Errorf("profile %s: missing required 'batch' block", filename)
	}

	logger.Debug("Profile loaded.", "file", filename)
	return &config.Profile{
		SourcePath:          schema.Batch.Source,
		Compiler:            schema.Batch.Compiler,
		MaxParallel:         schema.Batch.MaxParallel,
		MaxCorrectionRounds: schema.Batch.MaxCorrectionRounds,
		CachePath:           schema.Batch.Cache,
		WeightsPath:         schema.Batch.Weights,
		Extensions:          schema.Batch.Extensions,
	}, nil
}

// evalContext exposes the variables profile expressions may reference.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"cores": cty.NumberIntVal(int64(runtime.NumCPU())),
		},
	}
}
