// Package config manages project-local CLI configuration via Viper.
// Configuration is layered: defaults, then the project's .steerdoc.yaml,
// then STEERDOC_* environment variables.
package config
