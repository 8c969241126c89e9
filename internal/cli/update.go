package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steerdoc-labs/steerdoc/internal/update"
)

var (
	updateAll    bool
	updateCheck  bool
	updateForce  bool
	updateBackup bool
	updateDiff   bool
	updateYes    bool
)

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Check for and apply framework updates",
	Long: `Update installed frameworks to the current catalog content.

With --check, only report pending updates. A customized framework is never
overwritten without --force; a forced update always backs up the existing
file first. Use --diff to print current and incoming content before deciding.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateAll, "all", false, "Update every framework with a pending change")
	updateCmd.Flags().BoolVar(&updateCheck, "check", false, "Only report pending updates")
	updateCmd.Flags().BoolVar(&updateForce, "force", false, "Update customized frameworks (backup-guarded)")
	updateCmd.Flags().BoolVar(&updateBackup, "backup", false, "Back up non-customized targets too")
	updateCmd.Flags().BoolVar(&updateDiff, "diff", false, "Print current and incoming content instead of updating")
	updateCmd.Flags().BoolVarP(&updateYes, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	eng := newEngines()
	out := cmd.OutOrStdout()

	if updateCheck {
		return printCandidates(cmd, eng)
	}

	if updateAll {
		return runUpdateAll(cmd, eng)
	}

	if len(args) != 1 {
		return fmt.Errorf("provide a framework id, or use --all / --check")
	}
	id := args[0]

	if updateDiff {
		preview, err := eng.updater.Preview(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "--- %s (installed %s", preview.Path, preview.InstalledVersion)
		if preview.Customized {
			fmt.Fprint(out, ", customized")
		}
		fmt.Fprintln(out, ")")
		fmt.Fprintln(out, string(preview.Current))
		fmt.Fprintf(out, "+++ catalog %s\n", preview.IncomingVersion)
		fmt.Fprintln(out, string(preview.Incoming))
		return nil
	}

	opts := update.Options{Force: updateForce, CreateBackup: updateBackup}

	// A forced update of customized content is destructive; confirm it.
	if updateForce && !updateYes {
		customized, err := eng.updater.IsCustomized(id)
		if err != nil {
			return err
		}
		if customized && !confirm(out, fmt.Sprintf("? %s is customized. Overwrite (a backup will be created)? (y/N) ", id)) {
			fmt.Fprintln(out, "Update cancelled.")
			return nil
		}
	}

	result, err := eng.updater.Update(cmd.Context(), id, opts)
	if err != nil {
		return err
	}
	printUpdateResult(out, result)
	return nil
}

func runUpdateAll(cmd *cobra.Command, eng *engines) error {
	out := cmd.OutOrStdout()
	summary, err := eng.updater.UpdateAll(cmd.Context(), update.Options{
		Force:        updateForce,
		CreateBackup: updateBackup,
	})

	for _, o := range summary.Outcomes {
		if o.Err != nil {
			color.New(color.FgRed).Fprintf(out, "✗ %s: %v\n", o.ID, o.Err)
			continue
		}
		printUpdateResult(out, o.Result)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d updated, %d skipped (customized), %d failed.\n",
		summary.Updated(), summary.Cancelled(), summary.Failed())
	if summary.Cancelled() > 0 {
		fmt.Fprintln(out, "Customized frameworks were left untouched; re-run with --force to overwrite them (backups are created).")
	}
	return nil
}

func printCandidates(cmd *cobra.Command, eng *engines) error {
	out := cmd.OutOrStdout()
	candidates, err := eng.updater.CheckForUpdates(cmd.Context())
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		fmt.Fprintln(out, "All installed frameworks are up to date.")
		return nil
	}
	for _, c := range candidates {
		line := fmt.Sprintf("%s: %s → %s (%s)", c.ID, c.InstalledVersion, c.AvailableVersion, c.Direction)
		if c.FileMissing {
			line += " [installed file missing]"
		} else if c.Customized {
			line += " [customized]"
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func printUpdateResult(out io.Writer, result update.Result) {
	switch result.Status {
	case update.StatusCancelled:
		color.New(color.FgYellow).Fprintf(out, "– %s: customized, skipped (use --force to overwrite)\n", result.ID)
	default:
		color.New(color.FgGreen).Fprintf(out, "✓ %s: %s → %s\n", result.ID, result.FromVersion, result.ToVersion)
		if result.BackupPath != "" {
			fmt.Fprintf(out, "  Previous content backed up to %s\n", result.BackupPath)
		}
	}
}

// confirm prompts on stdin and returns true for an explicit yes.
func confirm(out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return answer == "y" || answer == "yes"
}
