// Package main provides the CLI entry point for the previous-service
// contact list builder.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jbec2912-cell/pervious-service-filter/internal/cli"
	"github.com/jbec2912-cell/pervious-service-filter/internal/config"
	"github.com/jbec2912-cell/pervious-service-filter/internal/logger"
	"github.com/jbec2912-cell/pervious-service-filter/internal/modules/filter"
	"github.com/jbec2912-cell/pervious-service-filter/internal/modules/output"
	"github.com/jbec2912-cell/pervious-service-filter/internal/runtime"
	"github.com/jbec2912-cell/pervious-service-filter/pkg/listing"
)

// Exit codes
const (
	ExitSuccess         = 0
	ExitValidationError = 1
	ExitParseError      = 2
	ExitRuntimeError    = 3
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Run command flags
	jobFile    string
	inputPath  string
	outputPath string
	maxYear    int
	minEquity  float64
	dryRun     bool

	// Build information (set via ldflags during build)
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitRuntimeError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "prevsvc",
	Short: "prevsvc - Previous-service contact list builder",
	Long: `prevsvc builds a previous-service contact list from a dealer
quote export (CSV).

It keeps only rows with a usable first name, a usable phone number, a
trade-in year at or below the cutoff, and trade equity at or above the
floor, then writes a fixed-column contact list CSV.

Examples:
  # Build a contact list from an export
  prevsvc run --input quotes.csv

  # Custom thresholds and destination
  prevsvc run --input quotes.csv --output list.csv --max-year 2022 --min-equity -3000

  # Run a declarative job file
  prevsvc run --job job.yaml

  # Validate a job file
  prevsvc validate job.yaml`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// Configure logger level based on flags
		if verbose {
			logger.SetLevel(slog.LevelDebug)
		} else if quiet {
			logger.SetLevel(slog.LevelError)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <job-file>",
	Short: "Validate a job configuration file",
	Long: `Validate a job configuration file against the schema.

Supports both JSON and YAML formats. The format is auto-detected
based on file extension (.json, .yaml, .yml) or content.

Exit codes:
  0 - Configuration is valid
  1 - Validation errors (schema violations)
  2 - Parse errors (invalid JSON/YAML syntax)

Examples:
  prevsvc validate job.json
  prevsvc validate job.yaml
  prevsvc validate --verbose job.json`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build a contact list from a quote export",
	Long: `Build a previous-service contact list.

The source and thresholds come either from direct flags (--input,
--output, --max-year, --min-equity) or from a declarative job file
(--job). The two modes are mutually exclusive: with --job, the job
file alone defines the source, destination, and thresholds, and
setting any of the direct flags is an error. A job file is validated
against the schema before running.

Exit codes:
  0 - Job executed successfully
  1 - Validation errors
  2 - Parse errors
  3 - Runtime errors

Examples:
  prevsvc run --input quotes.csv
  prevsvc run --input quotes.csv --max-year 2022
  prevsvc run --job job.yaml --dry-run`,
	Args: cobra.NoArgs,
	Run:  runJob,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print version, commit hash, and build date information.",
	Run:   runVersion,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")

	// Run command flags
	runCmd.Flags().StringVar(&jobFile, "job", "", "Path to a declarative job file (JSON/YAML)")
	runCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to the quote export CSV")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", output.DefaultOutputPath, "Path for the contact list CSV")
	runCmd.Flags().IntVar(&maxYear, "max-year", filter.DefaultMaxYear, "Keep only trade-in years at or below this value")
	runCmd.Flags().Float64Var(&minEquity, "min-equity", filter.DefaultMinEquity, "Drop rows with parseable equity below this value")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run input and filters without writing the output file")

	// Add commands
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func runValidate(_ *cobra.Command, args []string) {
	configPath := args[0]

	if !quiet {
		fmt.Printf("Validating job file: %s\n", configPath)
	}

	result := config.ParseConfig(configPath)

	if len(result.ParseErrors) > 0 {
		cli.PrintParseErrors(result.ParseErrors, verbose)
		os.Exit(ExitParseError)
	}

	if len(result.ValidationErrors) > 0 {
		cli.PrintValidationErrors(result.ValidationErrors, verbose, quiet)
		os.Exit(ExitValidationError)
	}

	if !quiet {
		fmt.Printf("✓ Job file is valid (format: %s)\n", result.Format)
		if verbose {
			cli.PrintConfigSummary(result.Data)
		}
	}

	os.Exit(ExitSuccess)
}

func runJob(cmd *cobra.Command, _ []string) {
	job, exitCode := resolveJob(cmd)
	if job == nil {
		os.Exit(exitCode)
	}

	executor, err := runtime.NewExecutorForJob(job, dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Failed to build job: %v\n", err)
		os.Exit(ExitValidationError)
	}

	if !quiet {
		if dryRun {
			fmt.Println("Running job (dry-run mode - output will not be written)...")
		} else {
			fmt.Println("Running job...")
		}
	}

	result, err := executor.Execute(job)

	cli.PrintRunResult(result, err, cli.OutputOptions{
		Verbose: verbose,
		Quiet:   quiet,
		DryRun:  dryRun,
	})

	if err != nil {
		os.Exit(ExitRuntimeError)
	}

	os.Exit(ExitSuccess)
}

// resolveJob builds the Job either from a declarative job file or from
// the direct flags. On failure it prints the errors and returns a nil
// job with the exit code to use.
func resolveJob(cmd *cobra.Command) (*listing.Job, int) {
	if jobFile != "" {
		if conflicts := changedDirectFlags(cmd); len(conflicts) > 0 {
			fmt.Fprintf(os.Stderr, "✗ --job cannot be combined with %s; the job file defines the source, destination, and thresholds\n",
				strings.Join(conflicts, ", "))
			return nil, ExitValidationError
		}
	}

	if jobFile == "" {
		if inputPath == "" {
			fmt.Fprintln(os.Stderr, "✗ Either --input or --job is required")
			return nil, ExitValidationError
		}
		return jobFromFlags(), ExitSuccess
	}

	if !quiet {
		fmt.Printf("Loading job file: %s\n", jobFile)
	}

	result := config.ParseConfig(jobFile)

	if len(result.ParseErrors) > 0 {
		cli.PrintParseErrors(result.ParseErrors, verbose)
		return nil, ExitParseError
	}

	if len(result.ValidationErrors) > 0 {
		cli.PrintValidationErrors(result.ValidationErrors, verbose, quiet)
		return nil, ExitValidationError
	}

	if !quiet {
		fmt.Printf("✓ Job file loaded successfully (format: %s)\n", result.Format)
	}

	job, err := config.ConvertToJob(result.Data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Failed to convert job file: %v\n", err)
		return nil, ExitValidationError
	}

	if verbose {
		fmt.Printf("  Job: %s\n", job.Name)
		if job.Description != "" {
			fmt.Printf("  Description: %s\n", job.Description)
		}
	}

	return job, ExitSuccess
}

// changedDirectFlags lists the direct job flags the user set explicitly,
// in --flag form.
func changedDirectFlags(cmd *cobra.Command) []string {
	var changed []string
	for _, name := range []string{"input", "output", "max-year", "min-equity"} {
		if cmd.Flags().Changed(name) {
			changed = append(changed, "--"+name)
		}
	}
	return changed
}

// jobFromFlags builds a single-source, single-sink job from the direct
// CLI flags.
func jobFromFlags() *listing.Job {
	return &listing.Job{
		Name: "previous-service",
		Input: &listing.ModuleConfig{
			Type:   "csv",
			Config: map[string]interface{}{"path": inputPath},
		},
		Output: &listing.ModuleConfig{
			Type:   "csv",
			Config: map[string]interface{}{"path": outputPath},
		},
		MaxYear:   maxYear,
		MinEquity: minEquity,
	}
}

func runVersion(_ *cobra.Command, _ []string) {
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Commit: %s\n", commit)
	fmt.Printf("Build Date: %s\n", buildDate)
}
