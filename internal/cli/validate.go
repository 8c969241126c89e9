package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steerdoc-labs/steerdoc/internal/validate"
)

var validateJSON bool

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate steering documents",
	Long: `Check steering documents for required sections, content quality signals,
and markdown formatting defects. Warnings do not fail validation; any
error-severity issue makes the command exit non-zero.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(validateCmd)
}

// fileReport pairs a file with its validation result for JSON output.
type fileReport struct {
	File   string          `json:"file"`
	Result validate.Result `json:"result"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var reports []fileReport
	failed := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		result := validate.Validate(string(data))
		reports = append(reports, fileReport{File: path, Result: result})
		if !result.Valid {
			failed++
		}
	}

	if validateJSON {
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	} else {
		for _, r := range reports {
			printReport(out, r)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed validation", failed, len(reports))
	}
	return nil
}

func printReport(out io.Writer, r fileReport) {
	if r.Result.Valid && len(r.Result.Warnings) == 0 {
		color.New(color.FgGreen).Fprintf(out, "✓ %s\n", r.File)
		return
	}

	if r.Result.Valid {
		color.New(color.FgYellow).Fprintf(out, "⚠ %s\n", r.File)
	} else {
		color.New(color.FgRed).Fprintf(out, "✗ %s\n", r.File)
	}

	for _, issue := range r.Result.All() {
		label := color.New(color.FgYellow).Sprint("warning")
		if issue.Severity == validate.SeverityError {
			label = color.New(color.FgRed).Sprint("error")
		}
		fmt.Fprintf(out, "  %d:%d %s %s", issue.Line, issue.Column, label, issue.Message)
		if issue.Code != "" {
			fmt.Fprintf(out, " (%s)", issue.Code)
		}
		fmt.Fprintln(out)
		if issue.Suggestion != "" {
			fmt.Fprintf(out, "      suggested fix: %s\n", issue.Suggestion)
		}
	}
}
