package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steerdoc-labs/steerdoc/internal/install"
)

var (
	installOverwrite bool
	installMerge     bool
	installBackup    bool
)

var installCmd = &cobra.Command{
	Use:   "install <id>",
	Short: "Install a framework into the steering directory",
	Long: `Install a framework from the catalog into the project steering directory.

If the target file already exists, install stops and reports the conflict.
Pass --overwrite to replace it (optionally with --backup), or --merge to
concatenate existing and incoming content with conflict markers. Merge is
naive concatenation; review the result by hand.`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&installOverwrite, "overwrite", false, "Replace an existing target file")
	installCmd.Flags().BoolVar(&installMerge, "merge", false, "Concatenate existing and incoming content with conflict markers")
	installCmd.Flags().BoolVar(&installBackup, "backup", false, "Back up an existing target before overwriting")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	if installOverwrite && installMerge {
		return fmt.Errorf("--overwrite and --merge are mutually exclusive")
	}

	eng := newEngines()
	result, err := eng.installer.Install(args[0], install.Options{
		Overwrite:    installOverwrite,
		Merge:        installMerge,
		CreateBackup: installBackup,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch result.Status {
	case install.StatusConflict:
		color.New(color.FgYellow).Fprintf(out, "Conflict: %s already exists (%d bytes, modified %s)\n",
			result.Conflict.Path, result.Conflict.Size, result.Conflict.ModTime.Format("2006-01-02 15:04:05"))
		fmt.Fprintln(out, "Re-run with --overwrite (optionally --backup) or --merge to resolve.")
		return nil
	case install.StatusMerged:
		color.New(color.FgGreen).Fprintf(out, "✓ Merged %s %s into %s\n", result.ID, result.Version, result.Path)
		fmt.Fprintln(out, "Merged content contains conflict markers; review and edit the file.")
	default:
		color.New(color.FgGreen).Fprintf(out, "✓ Installed %s %s to %s\n", result.ID, result.Version, result.Path)
	}

	if result.BackupPath != "" {
		fmt.Fprintf(out, "  Previous content backed up to %s\n", result.BackupPath)
	}
	if len(result.MissingDependencies) > 0 {
		color.New(color.FgYellow).Fprintf(out, "  Declared dependencies not installed: %s\n",
			strings.Join(result.MissingDependencies, ", "))
	}
	return nil
}
