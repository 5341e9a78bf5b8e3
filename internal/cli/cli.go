package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/recipeforge/internal/app"
	"github.com/vk/recipeforge/internal/recipe"
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
	flagSet := flag.NewFlagSet("recipeforge", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
RecipeForge - a build-recipe validator and catalog for scientific software stacks.

Usage:
  recipeforge [options] [RECIPE_PATH]

Arguments:
  RECIPE_PATH
    Path to a single recipe file or a directory containing recipe files
    (`+app.ExtHCL+`, `+app.ExtYAML+`).

Options:
`)
		flagSet.PrintDefaults()
	}

	recipesFlag := flagSet.String("recipes", "", "Path to the recipe file or directory.")
	rFlag := flagSet.String("r", "", "Path to the recipe file or directory (shorthand).")
	osNameFlag := flagSet.String("os-name", string(recipe.OSDebian), "Host OS family for osdependencies conditionals. One of: "+osFamilyList()+".")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	strictFlag := flagSet.Bool("strict", false, "Exit non-zero when any recipe in the corpus is rejected.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *recipesFlag != "" {
		path = *recipesFlag
	} else if *rFlag != "" {
		path = *rFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Recipe path determined.", "path", path)

	if path == "" {
		slog.Debug("No recipe path provided, printing usage and exiting.")
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

	if !recipe.IsKnownOSFamily(*osNameFlag) {
		return nil, false, &ExitError{Code: 2, Message: "invalid os-name: must be one of " + osFamilyList()}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		RecipePath: path,
		OSName:     *osNameFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
		Strict:     *strictFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func osFamilyList() string {
	names := make([]string, len(recipe.KnownOSFamilies))
	for i, fam := range recipe.KnownOSFamilies {
		names[i] = string(fam)
	}
	return strings.Join(names, ", ")
}
