package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/steerdoc-labs/steerdoc/internal/branding"
)

const (
	fileType = "yaml"

	// KeySteeringDir is the project-relative directory documents install into.
	KeySteeringDir = "steering_dir"

	// KeyManifest points at an external catalog root (directory containing
	// frameworks.yaml). Empty means the embedded catalog.
	KeyManifest = "manifest"

	// KeyMetadataFile overrides the installed-state file name inside the
	// steering directory.
	KeyMetadataFile = "metadata_file"
)

// defaultMetadataFile is the installed-state document inside the steering dir.
const defaultMetadataFile = ".steerdoc.json"

// FileName returns the project-local config file name (e.g., ".steerdoc.yaml").
func FileName() string {
	return "." + branding.CLIName() + "." + fileType
}

// FilePath returns the config file path inside the given project root.
func FilePath(projectRoot string) string {
	return filepath.Join(projectRoot, FileName())
}

// Load initializes Viper to read from the project config file and environment.
// A missing config file is not an error; env vars and defaults still apply.
func Load(projectRoot string) {
	viper.SetConfigFile(FilePath(projectRoot))
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeySteeringDir, branding.SteeringDir())
	viper.SetDefault(KeyMetadataFile, defaultMetadataFile)

	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair to the project config file.
func Set(projectRoot, key, value string) error {
	viper.Set(key, value)

	configFile := FilePath(projectRoot)

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// SteeringDir resolves the absolute steering directory for a project root.
func SteeringDir(projectRoot string) string {
	dir := Get(KeySteeringDir)
	if dir == "" {
		dir = branding.SteeringDir()
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(projectRoot, dir)
}

// MetadataPath resolves the installed-state file path for a project root.
func MetadataPath(projectRoot string) string {
	name := Get(KeyMetadataFile)
	if name == "" {
		name = defaultMetadataFile
	}
	return filepath.Join(SteeringDir(projectRoot), name)
}

// ManifestRoot returns the configured external catalog root, or "" for the
// embedded catalog.
func ManifestRoot() string {
	return Get(KeyManifest)
}
