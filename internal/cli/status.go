package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/steerdoc-labs/steerdoc/internal/catalog"
	"github.com/steerdoc-labs/steerdoc/internal/update"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show installed frameworks, customization, and pending updates",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(statusCmd)
}

// statusEntry is one installed framework's state for display.
type statusEntry struct {
	ID               string `json:"id"`
	InstalledVersion string `json:"installedVersion"`
	AvailableVersion string `json:"availableVersion,omitempty"`
	Customized       bool   `json:"customized"`
	FileMissing      bool   `json:"fileMissing,omitempty"`
	Retired          bool   `json:"retired,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	eng := newEngines()

	recs, err := eng.store.List()
	if err != nil {
		return err
	}

	var entries []statusEntry
	for _, rec := range recs {
		entry := statusEntry{ID: rec.ID, InstalledVersion: rec.Version}

		_, catErr := eng.loader.GetByID(rec.ID)
		switch {
		case errors.Is(catErr, catalog.ErrNotFound):
			entry.Retired = true
			entry.Customized = rec.Customized
		case catErr != nil:
			return catErr
		default:
			customized, err := eng.updater.IsCustomized(rec.ID)
			if errors.Is(err, update.ErrFileMissing) {
				entry.FileMissing = true
			} else if err != nil {
				return err
			} else {
				entry.Customized = customized
			}
		}
		entries = append(entries, entry)
	}

	candidates, err := eng.updater.CheckForUpdates(cmd.Context())
	if err != nil {
		return err
	}
	available := make(map[string]string, len(candidates))
	for _, c := range candidates {
		available[c.ID] = c.AvailableVersion
	}
	for i := range entries {
		entries[i].AvailableVersion = available[entries[i].ID]
	}

	if statusJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No frameworks installed.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tINSTALLED\tAVAILABLE\tSTATE")
	for _, e := range entries {
		avail := "-"
		if e.AvailableVersion != "" {
			avail = e.AvailableVersion
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.InstalledVersion, avail, describeState(e))
	}
	return w.Flush()
}

// describeState renders the state column for one entry.
func describeState(e statusEntry) string {
	switch {
	case e.FileMissing:
		return "file missing"
	case e.Retired && e.Customized:
		return "retired, customized"
	case e.Retired:
		return "retired from catalog"
	case e.Customized:
		return "customized"
	default:
		return "clean"
	}
}
