package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/prismc/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("prismc", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
prismc - A staged, bounded-parallel batch compilation orchestrator.

Usage:
  prismc [options] [SOURCE_PATH]

Arguments:
  SOURCE_PATH
    Path to a single source file or a directory to search for sources.

Options:
`)
		flagSet.PrintDefaults()
	}

	sourceFlag := flagSet.String("source", "", "Path to the source file or directory.")
	sFlag := flagSet.String("s", "", "Path to the source file or directory (shorthand).")
	profileFlag := flagSet.String("profile", "", "Path to an HCL batch profile file.")
	compilerFlag := flagSet.String("compiler", "", "Compiler front end to use. Default: 'passthrough'.")
	parallelFlag := flagSet.Int("max-parallel", 0, "Maximum in-flight compile attempts. 0 uses the host CPU count.")
	roundsFlag := flagSet.Int("correction-rounds", -1, "Error-correction round budget. -1 uses the default of 4.")
	cacheFlag := flagSet.String("cache", "", "Path to a SQLite result cache file. Empty disables caching.")
	weightsFlag := flagSet.String("weights", "", "Path to a YAML extension-weight override file.")
	extensionsFlag := flagSet.String("extensions", "", "Comma-separated source extensions, e.g. '.ts,.tsx'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *sourceFlag != "" {
		path = *sourceFlag
	} else if *sFlag != "" {
		path = *sFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Source path determined.", "path", path)

	if path == "" && *profileFlag == "" {
		slog.Debug("No source path or profile provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *parallelFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid max-parallel: must not be negative"}
	}
	if *roundsFlag < -1 {
		return nil, false, &ExitError{Code: 2, Message: "invalid correction-rounds: must be -1, 0, or positive"}
	}

	var extensions []string
	if *extensionsFlag != "" {
		for _, ext := range strings.Split(*extensionsFlag, ",") {
			ext = strings.TrimSpace(ext)
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			extensions = append(extensions, ext)
		}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SourcePath:       path,
		ProfilePath:      *profileFlag,
		Compiler:         *compilerFlag,
		MaxParallel:      *parallelFlag,
		CorrectionRounds: *roundsFlag,
		CachePath:        *cacheFlag,
		WeightsPath:      *weightsFlag,
		Extensions:       extensions,
		LogFormat:        logFormat,
		LogLevel:         logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
