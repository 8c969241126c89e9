package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/steerdoc-labs/steerdoc/internal/catalog"
	"github.com/steerdoc-labs/steerdoc/internal/store"
)

var (
	listCategory string
	listJSON     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog frameworks and their install state",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category (architecture, development, testing, operations, process)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry is one catalog framework with its install state for display.
type listEntry struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	Version          string `json:"version"`
	InstalledVersion string `json:"installedVersion,omitempty"`
	Description      string `json:"description"`
}

func runList(cmd *cobra.Command, args []string) error {
	if listCategory != "" && !catalog.Category(listCategory).Valid() {
		return fmt.Errorf("unknown category %q", listCategory)
	}

	eng := newEngines()
	available, err := eng.loader.ListAvailable()
	if err != nil {
		return err
	}

	var entries []listEntry
	for _, e := range available {
		if listCategory != "" && string(e.Category) != listCategory {
			continue
		}
		le := listEntry{
			ID:          e.ID,
			Name:        e.Name,
			Category:    string(e.Category),
			Version:     e.Version,
			Description: e.Description,
		}
		rec, err := eng.store.Get(e.ID)
		if err == nil {
			le.InstalledVersion = rec.Version
		} else if !errors.Is(err, store.ErrNotInstalled) {
			return err
		}
		entries = append(entries, le)
	}

	if listJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No frameworks in catalog.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tVERSION\tINSTALLED")
	for _, e := range entries {
		installed := "-"
		if e.InstalledVersion != "" {
			installed = e.InstalledVersion
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Name, e.Category, e.Version, installed)
	}
	return w.Flush()
}
