// Package cli provides CLI output formatting and display functions.
package cli

import (
	"fmt"
	"os"

	"github.com/jbec2912-cell/pervious-service-filter/pkg/listing"
)

// OutputOptions configures CLI output behavior.
type OutputOptions struct {
	Verbose bool
	Quiet   bool
	DryRun  bool
}

// PrintRunResult displays the job execution result.
func PrintRunResult(result *listing.RunResult, err error, opts OutputOptions) {
	if result == nil {
		fmt.Fprintln(os.Stderr, "✗ No execution result available")
		return
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "✗ Job execution failed")
		if result.Error != nil {
			fmt.Fprintf(os.Stderr, "  Module: %s\n", result.Error.Module)
			fmt.Fprintf(os.Stderr, "  Error: %s\n", result.Error.Message)
			if opts.Verbose && result.Error.Category != "" {
				fmt.Fprintf(os.Stderr, "  Category: %s\n", result.Error.Category)
			}
		}
		return
	}

	if opts.Quiet {
		return
	}

	if opts.DryRun {
		fmt.Println("✓ Job completed (dry-run mode - no output written)")
	} else {
		fmt.Println("✓ Job completed successfully")
	}
	fmt.Printf("  Status: %s\n", result.Status)
	fmt.Printf("  Rows read: %d\n", result.RowsRead)
	fmt.Printf("  Rows written: %d\n", result.RowsWritten)
	if result.RowsExcluded > 0 {
		fmt.Printf("  Rows excluded: %d\n", result.RowsExcluded)
	}
	if opts.Verbose {
		fmt.Printf("  Duration: %v\n", result.CompletedAt.Sub(result.StartedAt))
	}
}

// PrintConfigSummary prints job name and description if available.
func PrintConfigSummary(data map[string]interface{}) {
	if data == nil {
		return
	}

	job, ok := data["job"].(map[string]interface{})
	if !ok {
		return
	}

	if name, ok := job["name"].(string); ok {
		fmt.Printf("  Job: %s\n", name)
	}
	if description, ok := job["description"].(string); ok && description != "" {
		fmt.Printf("  Description: %s\n", description)
	}
}
