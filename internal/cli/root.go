package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/steerdoc-labs/steerdoc/internal/branding"
	"github.com/steerdoc-labs/steerdoc/internal/catalog"
	"github.com/steerdoc-labs/steerdoc/internal/config"
	"github.com/steerdoc-labs/steerdoc/internal/fsio"
	"github.com/steerdoc-labs/steerdoc/internal/install"
	"github.com/steerdoc-labs/steerdoc/internal/store"
	"github.com/steerdoc-labs/steerdoc/internal/update"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	flagProject  string
	flagManifest string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` installs versioned steering documents (frameworks) from a
catalog into a project directory, tracks what is installed, detects local
customization, and performs backup-guarded updates.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load(flagProject)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagProject, "project", ".", "Project root directory")
	rootCmd.PersistentFlags().StringVar(&flagManifest, "manifest", "", "Catalog root directory (default: embedded catalog)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// engines bundles the wired lifecycle components for one invocation.
type engines struct {
	loader      *catalog.Loader
	store       *store.Store
	installer   *install.Engine
	updater     *update.Engine
	steeringDir string
}

// newEngines constructs the catalog loader, metadata store, and engines
// from the resolved configuration. Constructed once per command run; the
// loader owns the in-memory catalog cache for that run.
func newEngines() *engines {
	fs := fsio.OS{}

	root := flagManifest
	if root == "" {
		root = config.ManifestRoot()
	}

	loader := catalog.New(root, fs)
	steeringDir := config.SteeringDir(flagProject)
	st := store.New(config.MetadataPath(flagProject), fs)
	installer := install.NewEngine(loader, st, fs, steeringDir)
	updater := update.NewEngine(loader, st, installer, fs)

	return &engines{
		loader:      loader,
		store:       st,
		installer:   installer,
		updater:     updater,
		steeringDir: steeringDir,
	}
}
