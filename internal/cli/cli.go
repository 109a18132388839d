package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/expconf/internal/app"
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
	flagSet := flag.NewFlagSet("expconf", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
expconf - Typed experiment configurations and hyperparameter search spaces.

Usage:
  expconf [options] COMMAND

Commands:
  uid      Print the 8 character identity digest of the instance.
  show     Print the instance as YAML.
  paths    Print every leaf value keyed by its dotted path.
  diff     Print the differences to the instance given by -other.
  sample   Draw one instance from the search space given by -space.
  expand   Print every instance of the search space given by -space.

Options:
`)
		flagSet.PrintDefaults()
	}

	schemaFlag := flagSet.String("schema", "", "Path to the schema .hcl file or directory.")
	sFlag := flagSet.String("s", "", "Path to the schema .hcl file or directory (shorthand).")
	typeFlag := flagSet.String("type", "", "Name of the config type to instantiate.")
	configFlag := flagSet.String("config", "", "Path to a YAML instance file. Defaults are used when empty.")
	otherFlag := flagSet.String("other", "", "Path to the YAML instance compared by 'diff'.")
	spaceFlag := flagSet.String("space", "", "Path to the search space file (.hcl, .yaml or .yml).")
	seedFlag := flagSet.Uint64("seed", 0, "Seed for 'sample'. 0 draws from a random source.")
	lenientFlag := flagSet.Bool("lenient", false, "Warn about unknown and invalid fields instead of failing.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments after command: %v", flagSet.Args()[1:])}
	}

	schemaPath := *schemaFlag
	if schemaPath == "" {
		schemaPath = *sFlag
	}

	cfg, err := app.NewConfig(app.Config{
		Command:    strings.ToLower(flagSet.Arg(0)),
		SchemaPath: schemaPath,
		TypeName:   *typeFlag,
		ConfigPath: *configFlag,
		OtherPath:  *otherFlag,
		SpacePath:  *spaceFlag,
		Seed:       *seedFlag,
		Lenient:    *lenientFlag,
		LogFormat:  strings.ToLower(*logFormatFlag),
		LogLevel:   strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
