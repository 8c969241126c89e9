package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var uninstallKeepFile bool

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <id>",
	Short: "Remove an installed framework",
	Long:  `Remove a framework's installed record and delete its file from the steering directory.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runUninstall,
}

func init() {
	uninstallCmd.Flags().BoolVar(&uninstallKeepFile, "keep-file", false, "Remove the record but leave the file on disk")
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	eng := newEngines()
	if err := eng.installer.Uninstall(args[0], uninstallKeepFile); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	return nil
}
