// Package cli provides CLI output formatting and display functions.
package cli

import (
	"fmt"
	"os"

	"github.com/jbec2912-cell/pervious-service-filter/internal/config"
)

// PrintParseErrors reports job-file parse failures to stderr, one line per
// error, prefixed with path:line:column when the source location is known.
func PrintParseErrors(errors []config.ParseError, verbose bool) {
	fmt.Fprintln(os.Stderr, "✗ Job file could not be parsed:")
	for _, err := range errors {
		line := "  " + parseErrorLocation(err) + err.Message
		if verbose && err.Type != "" {
			line += fmt.Sprintf(" [%s]", err.Type)
		}
		fmt.Fprintln(os.Stderr, line)
	}
}

// parseErrorLocation renders "path:line:column: ", or the empty string when
// the error carries no location.
func parseErrorLocation(err config.ParseError) string {
	if err.Path == "" {
		return ""
	}
	loc := err.Path
	if err.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, err.Line)
		if err.Column > 0 {
			loc = fmt.Sprintf("%s:%d", loc, err.Column)
		}
	}
	return loc + ": "
}

// PrintValidationErrors reports schema violations in a job file to stderr.
// The compact form fits one violation per line; verbose adds the violated
// schema keyword and the expected value when the schema provides one.
func PrintValidationErrors(errors []config.ValidationError, verbose, quiet bool) {
	fmt.Fprintln(os.Stderr, "✗ Job file failed validation:")
	for _, err := range errors {
		path := err.Path
		if path == "" {
			path = "/"
		}

		if !verbose {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", path, compactMessage(err.Message))
			continue
		}

		fmt.Fprintf(os.Stderr, "  %s: %s\n", path, err.Message)
		if err.Type != "" {
			fmt.Fprintf(os.Stderr, "      keyword: %s\n", err.Type)
		}
		if err.Expected != "" {
			fmt.Fprintf(os.Stderr, "      expected: %s\n", err.Expected)
		}
	}

	if !quiet && !verbose {
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run again with --verbose for full validation details")
	}
}

// compactMessage keeps long schema messages to a single readable line.
func compactMessage(msg string) string {
	if len(msg) > 80 {
		return msg[:77] + "..."
	}
	return msg
}
